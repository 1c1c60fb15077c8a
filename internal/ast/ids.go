package ast

type (
	FileID    uint32
	ItemID    uint32
	ExprID    uint32
	FnParamID uint32
	PayloadID uint32
)

const (
	NoFileID    FileID    = 0
	NoItemID    ItemID    = 0
	NoExprID    ExprID    = 0
	NoFnParamID FnParamID = 0
	NoPayloadID PayloadID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id FnParamID) IsValid() bool { return id != NoFnParamID }

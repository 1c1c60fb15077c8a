// Package fuzztests houses Go fuzz harnesses for the check pipeline
// (source -> lexer -> parser -> guard validator). They look for panics,
// hangs and diagnostics that point outside the checked file.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

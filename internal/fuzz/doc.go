// Package fuzztests houses Go fuzz harnesses for the token pipeline
// (source -> lexer -> stream -> sniffs -> fixer). They guard against panics
// and broken structural invariants on arbitrary input.
//
// Назначение: прогонять байты через токенизатор и цикл исправлений и
// проверять инварианты потока (internal/testkit).
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

// Package fuzztests houses Go fuzz harnesses that exercise the fmtguard
// pipeline (source -> lexer -> callsite -> check -> rewrite). Its goal is to
// smoke test robustness and guard against panics or broken spans on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через анализ и переписывание.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/lexer, internal/check,
// internal/rewrite, internal/testkit.

package fuzztests

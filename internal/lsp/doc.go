// Package lsp serves fmtguard diagnostics over the Language Server Protocol.
//
// Documents are analysed on open and on every change from the editor's
// buffer, never from disk. Diagnostics are published per document; quick
// fixes come from the structured fixes attached to diagnostics, and a
// source action inserts explicit casts for the whole file.
package lsp

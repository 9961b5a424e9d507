package fuzztests

import (
	"testing"

	"fmtguard/internal/check"
	"fmtguard/internal/diag"
	"fmtguard/internal/lexer"
	"fmtguard/internal/rewrite"
	"fmtguard/internal/source"
	"fmtguard/internal/testkit"
	"fmtguard/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.c", clampInput(input)))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		for i := 0; ; i++ {
			tok := lx.Next()
			if tok.Kind == token.EOF {
				break
			}
			if i > len(file.Content)+1 {
				t.Fatalf("lexer does not advance: %d tokens for %d bytes", i, len(file.Content))
			}
		}
	})
}

func FuzzAnalyze(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.c", clampInput(input)))

		a := check.Analyze(file, check.Options{})
		if err := testkit.CheckSpanInvariants(a); err != nil {
			t.Fatal(err)
		}
		if a.Fatal {
			return
		}
		if _, _, err := rewrite.OptimizeSource(a, rewrite.DefaultContract); err != nil {
			t.Fatalf("optimize: %v", err)
		}
	})
}

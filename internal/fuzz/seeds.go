package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var builtinSeeds = []string{
	"",
	"int main(void) { return 0; }\n",
	`printf("%d %s\n", n, name);`,
	`fprintf(stderr, "%5.2f%%", (double) x);`,
	`snprintf(buf, sizeof buf, "%*d|%-10s", w, (long) v, "x");`,
	`sprintf(out, "%lu %zu %n", (unsigned long) a, (size_t) b, &c);`,
	`dprintf(fd, "%1$d");`,
	`printf("unterminated %d`,
	`printf("%d", f(printf("%s", s)));`,
	"printf(\"a\" /* c */ \"b %c\", 'x');\n",
	"printf(\"%d\\\n\", 1); // tail \\\n continued\n",
	`printf(u8"%ls", L"wide");`,
	`printf("%q %hhd %jd %tu", 1, (signed char) 2, (intmax_t) 3, (ptrdiff_t) 4);`,
	`printf(,);`,
	`printf("%d" 1);`,
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.c и *.h файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if ext := filepath.Ext(path); ext != ".c" && ext != ".h" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

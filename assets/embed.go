package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed dictionary.txt migrations/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// Dictionary returns the embedded default word list, all lengths.
func Dictionary() ([]string, error) {
	return readLines("dictionary.txt")
}

// Migrations returns the embedded SQL migrations rooted at their directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

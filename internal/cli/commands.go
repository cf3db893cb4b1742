package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rptconv/internal/convert"
)

// RunConvert converts report files or directories of them to workbooks.
func RunConvert(args []string, svc *convert.Service) {
	// Parse --out flag
	var outDir string
	var paths []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--out", "-o":
			if i+1 >= len(args) {
				fmt.Println("error: --out requires a directory")
				fmt.Println("usage: rptconv convert [--out <dir>] <path> [...]")
				os.Exit(1)
			}
			outDir = args[i+1]
			i++
		default:
			paths = append(paths, args[i])
		}
	}

	if len(paths) == 0 {
		fmt.Println("error: specify at least one file or directory")
		fmt.Println("usage: rptconv convert [--out <dir>] <path> [...]")
		os.Exit(1)
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0755); err != nil {
			fmt.Printf("error: create output directory: %v\n", err)
			os.Exit(1)
		}
	}

	// Collect all report files to convert
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fmt.Printf("warning: cannot access %s: %v\n", path, err)
			continue
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				fmt.Printf("warning: cannot access %s: %v\n", p, err)
				return nil
			}
			if fi.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(fi.Name()), ".rpt") {
				files = append(files, p)
			}
			return nil
		})
	}

	if len(files) == 0 {
		fmt.Println("no report files found")
		return
	}

	fmt.Printf("converting %d file(s)...\n", len(files))

	var success, failed int
	for i, path := range files {
		fmt.Printf("[%d/%d] %s ... ", i+1, len(files), path)

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("read failed: %v\n", err)
			failed++
			continue
		}

		res, err := svc.Convert(filepath.Base(path), data)
		if err != nil {
			fmt.Printf("convert failed: %v\n", err)
			failed++
			continue
		}

		dir := outDir
		if dir == "" {
			dir = filepath.Dir(path)
		}
		outPath := filepath.Join(dir, res.FileName)
		if err := os.WriteFile(outPath, res.Data.Bytes(), 0644); err != nil {
			fmt.Printf("write failed: %v\n", err)
			failed++
			continue
		}

		fmt.Printf("ok -> %s\n", outPath)
		success++
	}

	fmt.Printf("\ndone: %d converted, %d failed\n", success, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

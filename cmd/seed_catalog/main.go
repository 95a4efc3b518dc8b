// seed_catalog genera un script SQL idempotente con el catálogo inicial (editoriales,
// categorías, autores y libros) a partir de un XML exportado en UTF-8 o ISO-8859-1.
//
// Uso: go run ./cmd/seed_catalog [ruta/catalogo.xml] [salida.sql]
// Por defecto lee cmd/seed_catalog/testdata/catalog.xml.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	moduleRoot := findModuleRoot()
	xmlPath := filepath.Join(moduleRoot, "cmd", "seed_catalog", "testdata", "catalog.xml")
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	c, err := parseCatalog(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar catálogo: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, c); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d editoriales, %d categorías, %d autores, %d libros\n",
		outPath, len(c.Editorials), len(c.Categories), len(c.Authors), len(c.Books))
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type editorial struct {
	Name, Country, Website string
}

type category struct {
	Name, Description string
}

type author struct {
	Name, LastName, Nationality string
}

type book struct {
	Title, ISBN, Language, Image, Description string
	AuthorName, AuthorLastName               string
	Editorial, Category                      string
	Price                                    decimal.Decimal
	Stock                                    int
	ReleaseDate                              time.Time
}

type catalog struct {
	Editorials []editorial
	Categories []category
	Authors    []author
	Books      []book
}

// charsetReader admite exportaciones en ISO-8859-1 además de UTF-8.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToUpper(charset) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "", "UTF-8":
		return input, nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", charset)
}

// parseCatalog lee el XML <catalogo> con editoriales, categorías, autores y libros.
func parseCatalog(r io.Reader) (*catalog, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("leer XML: %w", err)
	}
	root := doc.SelectElement("catalogo")
	if root == nil {
		return nil, fmt.Errorf("falta el elemento raíz <catalogo>")
	}

	c := &catalog{}
	for i, el := range root.FindElements("./editoriales/editorial") {
		e := editorial{
			Name:    attr(el, "nombre"),
			Country: attr(el, "pais"),
			Website: attr(el, "web"),
		}
		if e.Name == "" || e.Country == "" {
			return nil, fmt.Errorf("editorial #%d sin nombre o país", i+1)
		}
		c.Editorials = append(c.Editorials, e)
	}
	for i, el := range root.FindElements("./categorias/categoria") {
		cat := category{Name: attr(el, "nombre"), Description: strings.TrimSpace(el.Text())}
		if cat.Name == "" {
			return nil, fmt.Errorf("categoría #%d sin nombre", i+1)
		}
		c.Categories = append(c.Categories, cat)
	}
	for i, el := range root.FindElements("./autores/autor") {
		a := author{
			Name:        attr(el, "nombre"),
			LastName:    attr(el, "apellido"),
			Nationality: attr(el, "nacionalidad"),
		}
		if a.Name == "" || a.LastName == "" {
			return nil, fmt.Errorf("autor #%d sin nombre o apellido", i+1)
		}
		c.Authors = append(c.Authors, a)
	}
	for i, el := range root.FindElements("./libros/libro") {
		b, err := parseBook(el)
		if err != nil {
			return nil, fmt.Errorf("libro #%d: %w", i+1, err)
		}
		c.Books = append(c.Books, b)
	}
	return c, nil
}

func parseBook(el *etree.Element) (book, error) {
	b := book{
		ISBN:           attr(el, "isbn"),
		Language:       attr(el, "idioma"),
		Image:          attr(el, "imagen"),
		AuthorName:     attr(el, "autor_nombre"),
		AuthorLastName: attr(el, "autor_apellido"),
		Editorial:      attr(el, "editorial"),
		Category:       attr(el, "categoria"),
	}
	if t := el.SelectElement("titulo"); t != nil {
		b.Title = strings.TrimSpace(t.Text())
	}
	if d := el.SelectElement("descripcion"); d != nil {
		b.Description = strings.TrimSpace(d.Text())
	}
	if b.Title == "" || b.ISBN == "" {
		return b, fmt.Errorf("título e isbn son requeridos")
	}
	if b.AuthorLastName == "" || b.Editorial == "" || b.Category == "" {
		return b, fmt.Errorf("%s: autor, editorial y categoría son requeridos", b.ISBN)
	}

	var err error
	if b.Price, err = decimal.NewFromString(attr(el, "precio")); err != nil || b.Price.IsNegative() {
		return b, fmt.Errorf("%s: precio inválido %q", b.ISBN, attr(el, "precio"))
	}
	b.Price = b.Price.Round(2)
	if b.Stock, err = strconv.Atoi(attr(el, "stock")); err != nil || b.Stock < 0 {
		return b, fmt.Errorf("%s: stock inválido %q", b.ISBN, attr(el, "stock"))
	}
	if b.ReleaseDate, err = time.Parse("2006-01-02", attr(el, "publicacion")); err != nil {
		return b, fmt.Errorf("%s: fecha de publicación inválida %q", b.ISBN, attr(el, "publicacion"))
	}
	return b, nil
}

func attr(el *etree.Element, key string) string {
	return strings.TrimSpace(el.SelectAttrValue(key, ""))
}

// writeSQL escribe un script que se puede ejecutar varias veces sin duplicar filas.
func writeSQL(w io.Writer, c *catalog) error {
	var sb strings.Builder
	sb.WriteString("-- Catálogo inicial de la librería\n")
	sb.WriteString("-- Generado por cmd/seed_catalog\n\n")
	sb.WriteString("BEGIN;\n\n")

	if len(c.Editorials) > 0 {
		sb.WriteString("-- 1. Editoriales\n")
		sb.WriteString("INSERT INTO editorials (name, country, website) VALUES\n")
		for i, e := range c.Editorials {
			fmt.Fprintf(&sb, "  (%s, %s, %s)%s\n", quote(e.Name), quote(e.Country), nullable(e.Website), sep(i, len(c.Editorials)))
		}
		sb.WriteString("ON CONFLICT (name) DO UPDATE SET country = EXCLUDED.country, website = EXCLUDED.website, updated_at = now();\n\n")
	}

	if len(c.Categories) > 0 {
		sb.WriteString("-- 2. Categorías\n")
		sb.WriteString("INSERT INTO categories (name, description) VALUES\n")
		for i, cat := range c.Categories {
			fmt.Fprintf(&sb, "  (%s, %s)%s\n", quote(cat.Name), quote(cat.Description), sep(i, len(c.Categories)))
		}
		sb.WriteString("ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description, updated_at = now();\n\n")
	}

	if len(c.Authors) > 0 {
		// authors no tiene clave natural única: se inserta solo si no existe (nombre, apellido).
		sb.WriteString("-- 3. Autores\n")
		for _, a := range c.Authors {
			fmt.Fprintf(&sb, "INSERT INTO authors (name, last_name, nationality)\n")
			fmt.Fprintf(&sb, "SELECT %s, %s, %s\n", quote(a.Name), quote(a.LastName), quote(a.Nationality))
			fmt.Fprintf(&sb, "WHERE NOT EXISTS (SELECT 1 FROM authors WHERE name = %s AND last_name = %s);\n", quote(a.Name), quote(a.LastName))
		}
		sb.WriteString("\n")
	}

	if len(c.Books) > 0 {
		sb.WriteString("-- 4. Libros (autor, editorial y categoría por nombre)\n")
		for _, b := range c.Books {
			authorCond := "a.last_name = " + quote(b.AuthorLastName)
			if b.AuthorName != "" {
				authorCond += " AND a.name = " + quote(b.AuthorName)
			}
			sb.WriteString("INSERT INTO books (title, id_author, isbn, id_editorial, id_category, price, stock, release_date, language, image, description)\n")
			fmt.Fprintf(&sb, "SELECT %s, a.id, %s, e.id, c.id, %s, %d, DATE '%s', %s, %s, %s\n",
				quote(b.Title), quote(b.ISBN), b.Price.StringFixed(2), b.Stock,
				b.ReleaseDate.Format("2006-01-02"), quote(b.Language), nullable(b.Image), nullable(b.Description))
			fmt.Fprintf(&sb, "FROM (SELECT id FROM authors a WHERE %s ORDER BY id LIMIT 1) a, editorials e, categories c\n", authorCond)
			fmt.Fprintf(&sb, "WHERE e.name = %s AND c.name = %s\n", quote(b.Editorial), quote(b.Category))
			sb.WriteString("ON CONFLICT (isbn) DO UPDATE SET title = EXCLUDED.title, price = EXCLUDED.price, stock = EXCLUDED.stock, updated_at = now();\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, sb.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}

func sep(i, n int) string {
	if i < n-1 {
		return ","
	}
	return ""
}

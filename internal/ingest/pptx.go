package ingest

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/slidesift/slidesift/internal/model"
)

// Deck is the extracted text content of a presentation file.
type Deck struct {
	Path   string
	Slides []model.SlideText
}

var (
	slidePathRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)
	notesPathRe = regexp.MustCompile(`^ppt/notesSlides/notesSlide(\d+)\.xml$`)
)

// ReadDeck opens a .pptx file and extracts the text of every slide in
// presentation order. Titles come from the title placeholder when the slide
// has one, otherwise the first text block is promoted.
func ReadDeck(path string) (*Deck, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("deck not found: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("deck path %s is a directory", path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pptx") {
		return nil, fmt.Errorf("unsupported file type %q (expected .pptx)", filepath.Ext(path))
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = zr.Close() }()

	slideFiles := map[int]*zip.File{}
	notesFiles := map[int]*zip.File{}
	for _, f := range zr.File {
		if m := slidePathRe.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			slideFiles[n] = f
		} else if m := notesPathRe.FindStringSubmatch(f.Name); m != nil {
			n, _ := strconv.Atoi(m[1])
			notesFiles[n] = f
		}
	}
	if len(slideFiles) == 0 {
		return nil, fmt.Errorf("no slides found in %s", path)
	}

	numbers := make([]int, 0, len(slideFiles))
	for n := range slideFiles {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	deck := &Deck{Path: path}
	for _, n := range numbers {
		slide, err := readSlide(slideFiles[n], n)
		if err != nil {
			return nil, err
		}
		if nf, ok := notesFiles[n]; ok {
			notes, err := readNotes(nf)
			if err != nil {
				return nil, err
			}
			slide.Notes = notes
		}
		deck.Slides = append(deck.Slides, slide)
	}
	return deck, nil
}

func readSlide(f *zip.File, number int) (model.SlideText, error) {
	rc, err := f.Open()
	if err != nil {
		return model.SlideText{}, fmt.Errorf("open slide %d: %w", number, err)
	}
	defer func() { _ = rc.Close() }()

	content, err := parseSlideXML(rc)
	if err != nil {
		return model.SlideText{}, fmt.Errorf("parse slide %d: %w", number, err)
	}

	slide := model.SlideText{
		Number: number,
		Title:  content.title,
		Tables: content.tables,
	}
	blocks := content.blocks
	if slide.Title == "" && len(blocks) > 0 {
		slide.Title = blocks[0]
		blocks = blocks[1:]
	}
	slide.Body = strings.Join(blocks, "\n")
	return slide, nil
}

func readNotes(f *zip.File) (string, error) {
	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("open notes %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	content, err := parseSlideXML(rc)
	if err != nil {
		return "", fmt.Errorf("parse notes %s: %w", f.Name, err)
	}
	parts := content.blocks
	if content.title != "" {
		parts = append([]string{content.title}, parts...)
	}
	return strings.Join(parts, "\n"), nil
}

type slideContent struct {
	title  string
	blocks []string
	tables []string
}

// parseSlideXML walks the DrawingML token stream rather than mapping the
// schema to structs: only shape text, placeholder types, and tables matter,
// and local names are stable across the namespace prefixes exporters use.
func parseSlideXML(r io.Reader) (*slideContent, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	sc := &slideContent{}
	var (
		inShape      bool
		shapeIsTitle bool
		shapeText    strings.Builder
		inTable      bool
		inCell       bool
		inText       bool
		rows         []string
		cells        []string
		cellText     strings.Builder
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "sp":
				inShape = true
				shapeIsTitle = false
				shapeText.Reset()
			case "ph":
				if inShape {
					for _, a := range el.Attr {
						if a.Name.Local == "type" && (a.Value == "title" || a.Value == "ctrTitle") {
							shapeIsTitle = true
						}
					}
				}
			case "tbl":
				inTable = true
				rows = nil
			case "tr":
				if inTable {
					cells = nil
				}
			case "tc":
				if inTable {
					inCell = true
					cellText.Reset()
				}
			case "t":
				inText = true
			case "br":
				if inShape && !inTable {
					shapeText.WriteByte('\n')
				}
			}

		case xml.CharData:
			if !inText {
				break
			}
			if inCell {
				cellText.Write(el)
			} else if inShape {
				shapeText.Write(el)
			}

		case xml.EndElement:
			switch el.Name.Local {
			case "t":
				inText = false
			case "p":
				if inCell {
					cellText.WriteByte(' ')
				} else if inShape {
					shapeText.WriteByte('\n')
				}
			case "tc":
				if inTable {
					inCell = false
					cells = append(cells, strings.TrimSpace(cellText.String()))
				}
			case "tr":
				if inTable {
					row := strings.Join(cells, " | ")
					if strings.TrimSpace(strings.ReplaceAll(row, "|", "")) != "" {
						rows = append(rows, row)
					}
				}
			case "tbl":
				inTable = false
				if len(rows) > 0 {
					sc.tables = append(sc.tables, strings.Join(rows, "\n"))
				}
			case "sp":
				inShape = false
				text := CleanText(shapeText.String())
				if text == "" {
					break
				}
				if shapeIsTitle && sc.title == "" {
					sc.title = text
				} else {
					sc.blocks = append(sc.blocks, text)
				}
			}
		}
	}
	return sc, nil
}

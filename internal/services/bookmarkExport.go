package services

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"bookmark/internal/models"
)

// DefaultImportFolders are the export folders read when none are given.
var DefaultImportFolders = []string{"Услуги", "Разработка", "Полезное"}

// LoadBookmarkExport reads a browser bookmark export (Netscape HTML) from path.
func LoadBookmarkExport(path string, folders []string) ([]models.ImportedLink, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open bookmark export: %w", err)
	}
	defer f.Close()
	return ParseBookmarkExport(f, folders)
}

// ParseBookmarkExport returns the links filed under the named folders,
// including their subfolders. Browser-internal urls are skipped. A url seen
// more than once keeps the entry with the newest add_date, at the position
// it was first seen.
func ParseBookmarkExport(r io.Reader, folders []string) ([]models.ImportedLink, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmark export: %w", err)
	}
	if len(folders) == 0 {
		folders = DefaultImportFolders
	}
	targets := make(map[string]bool, len(folders))
	for _, f := range folders {
		targets[strings.TrimSpace(f)] = true
	}

	elements := elementsOf(doc)
	links := []models.ImportedLink{}
	index := map[string]int{}

	for i, n := range elements {
		if n.DataAtom != atom.H3 {
			continue
		}
		folder := strings.TrimSpace(textOf(n))
		if !targets[folder] {
			continue
		}
		list := nextElement(elements[i+1:], atom.Dl)
		if list == nil {
			continue
		}

		found := 0
		for _, a := range elementsOf(list) {
			if a.DataAtom != atom.A {
				continue
			}
			href := attrOf(a, "href")
			if href == "" || strings.HasPrefix(href, "chrome://") || strings.HasPrefix(href, "about:") {
				continue
			}
			addDate, err := strconv.ParseInt(attrOf(a, "add_date"), 10, 64)
			if err != nil {
				addDate = 0
			}
			link := models.ImportedLink{URL: href, Title: strings.TrimSpace(textOf(a)), AddDate: addDate}

			if j, ok := index[href]; ok {
				if addDate > links[j].AddDate {
					links[j] = link
				}
			} else {
				index[href] = len(links)
				links = append(links, link)
			}
			found++
		}
		log.Debug().Str("folder", folder).Int("links", found).Msg("Read bookmark folder")
	}
	return links, nil
}

// elementsOf lists n and its element descendants in document order.
func elementsOf(n *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func nextElement(nodes []*html.Node, a atom.Atom) *html.Node {
	for _, n := range nodes {
		if n.DataAtom == a {
			return n
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

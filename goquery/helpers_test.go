package goquery_test

import (
	"context"
	"fmt"

	"github.com/fwojciec/worldart"
	"github.com/fwojciec/worldart/mock"
)

const host = "http://www.world-art.ru"

// testVocabulary resolves a small fixed subset of the catalog vocabulary.
func testVocabulary() *mock.Vocabulary {
	genres := map[string]string{
		"боевик":         "Action",
		"фильм действия": "Action",
		"фантастика":     "Sci-Fi",
		"драма":          "Drama",
	}
	types := map[string]worldart.Type{
		"ТВ":                   worldart.TypeTV,
		"OVA":                  worldart.TypeOVA,
		"полнометражный фильм": worldart.TypeFeature,
	}
	countries := map[string]string{
		"Япония": "JP",
		"США":    "US",
	}
	studios := map[int]string{
		3:  "Gainax",
		14: "Sunrise",
	}
	return &mock.Vocabulary{
		ResolveGenreFn: func(name string) (string, bool) {
			v, ok := genres[name]
			return v, ok
		},
		ResolveTypeFn: func(name string) (worldart.Type, bool) {
			v, ok := types[name]
			return v, ok
		},
		ResolveCountryFn: func(name string) (string, bool) {
			v, ok := countries[name]
			return v, ok
		},
		ResolveStudioFn: func(id int) (string, bool) {
			v, ok := studios[id]
			return v, ok
		},
	}
}

// pages returns a fetcher serving fixed HTML by URL. Unknown URLs yield
// an empty page.
func pages(byURL map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			return byURL[url], nil
		},
		CloseFn: func() error { return nil },
	}
}

// layout wraps body in the catalog's outer table layout: six cells, the
// second holding outbound links and the sixth the body block.
func layout(body string) string {
	return `<html><head><title>world-art</title></head><body><center>` +
		`<table height="58%"><tr><td><table><tr>` +
		`<td>menu</td>` +
		`<td><a href="http://www.animenewsnetwork.com/encyclopedia/anime.php?id=13">ANN</a> ` +
		`<a href="http://www.world-art.ru/animation/animation.php?id=2">related</a> ` +
		`<a href="list.php">list</a></td>` +
		`<td></td><td></td><td></td>` +
		`<td>` + body + `</td>` +
		`</tr></table></td></tr></table></center></body></html>`
}

// animationBody places head in the third cell of the second row of the
// third table, followed by rest.
func animationBody(head, rest string) string {
	return `<table><tr><td>poster</td></tr></table>` +
		`<table><tr><td>rating</td></tr></table>` +
		`<table><tr><td>spacer</td></tr><tr>` +
		`<td><img src="http://www.world-art.ru/img/company_new/3.gif"></td><td></td>` +
		`<td>` + head + `</td></tr></table>` + rest
}

// cinemaBody places head in the third cell of the first row of the third table.
func cinemaBody(head, rest string) string {
	return `<table><tr><td>poster</td></tr></table>` +
		`<table><tr><td>rating</td></tr></table>` +
		`<table><tr><td></td><td></td><td>` + head + `</td></tr></table>` + rest
}

func animationNames(lines ...string) string {
	s := `<table><tr><td><font size="5">` + lines[0] + `</font>`
	for _, l := range lines[1:] {
		s += `<br>` + l
	}
	return s + `</td></tr></table>`
}

func fields(items ...string) string {
	s := `<font size="2">`
	for _, it := range items {
		s += it + `<br>`
	}
	return s + `</font>`
}

func field(label, value string) string {
	return fmt.Sprintf(`<b>%s</b>%s`, label, value)
}

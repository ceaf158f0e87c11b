package goquery

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/worldart"
)

// Ensure FrameHarvester implements worldart.FrameHarvester.
var _ worldart.FrameHarvester = (*FrameHarvester)(nil)

// FrameHarvester collects frame images from an item's gallery page.
type FrameHarvester struct {
	Host    string
	Fetcher worldart.Fetcher
	Images  worldart.ImageDownloader
}

// NewFrameHarvester creates a FrameHarvester for the default catalog host.
func NewFrameHarvester(fetcher worldart.Fetcher, images worldart.ImageDownloader) *FrameHarvester {
	return &FrameHarvester{
		Host:    worldart.DefaultHost,
		Fetcher: fetcher,
		Images:  images,
	}
}

// frame is a gallery image accepted for download.
type frame struct {
	remote string
	number string
	ext    string
}

var (
	animationFrameRe = regexp.MustCompile(`-(\d+)-optimize_d(\.(?:jpe?g|png|gif))`)
	cinemaFrameRe    = regexp.MustCompile(`_(\d+)/.+/(\d+)-(\d+)-.+(\.(?:jpe?g|png|gif))`)
)

// Frames fetches the gallery of item id and stores every accepted frame.
func (h *FrameHarvester) Frames(ctx context.Context, id int, d worldart.Dialect) ([]string, error) {
	html, err := h.Fetcher.Fetch(ctx, worldart.GalleryURL(h.Host, id, d))
	if err != nil {
		return nil, fmt.Errorf("fetching gallery of %d: %w", id, err)
	}
	if html == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, worldart.Errorf(worldart.EINVALID, "failed to parse HTML: %v", err)
	}

	var refs []string
	for _, f := range h.scan(doc, d) {
		ref, err := h.Images.Store(ctx, f.remote, worldart.FrameKey(id, f.number, f.ext))
		if err != nil {
			if ctx.Err() != nil {
				return refs, ctx.Err()
			}
			continue
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// scan returns the frames found in images nested three tables deep.
func (h *FrameHarvester) scan(doc *goquery.Document, d worldart.Dialect) []frame {
	var frames []frame
	doc.Find("table table table img").Each(func(_ int, img *goquery.Selection) {
		src, ok := img.Attr("src")
		if !ok || src == "" {
			return
		}
		var f frame
		switch d {
		case worldart.DialectAnimation:
			f, ok = h.animationFrame(src)
		case worldart.DialectCinema:
			f, ok = h.cinemaFrame(src)
		default:
			ok = false
		}
		if ok {
			frames = append(frames, f)
		}
	})
	return frames
}

// animationFrame upgrades a preview to the full-size tier and resolves it
// against the dialect directory.
func (h *FrameHarvester) animationFrame(src string) (frame, bool) {
	src = strings.ReplaceAll(src, "optimize_b", "optimize_d")
	src = resolveURL(hostRoot(h.Host)+string(worldart.DialectAnimation)+"/", src)
	m := animationFrameRe.FindStringSubmatch(src)
	if m == nil {
		return frame{}, false
	}
	return frame{remote: src, number: m[1], ext: m[2]}, true
}

// cinemaFrame rebuilds the full-size URL from the bucket, item id and
// frame number embedded in a preview path.
func (h *FrameHarvester) cinemaFrame(src string) (frame, bool) {
	m := cinemaFrameRe.FindStringSubmatch(src)
	if m == nil {
		return frame{}, false
	}
	remote := fmt.Sprintf("%s%s/img/%s/%s/%s%s", hostRoot(h.Host), worldart.DialectCinema, m[1], m[2], m[3], m[4])
	return frame{remote: remote, number: m[3], ext: m[4]}, true
}

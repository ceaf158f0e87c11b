package worldart

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Dialect is one of the two page templates served by the catalog.
type Dialect string

// Supported dialects.
const (
	DialectAnimation Dialect = "animation"
	DialectCinema    Dialect = "cinema"
)

// DialectFromURL determines the dialect from the path of a catalog URL.
// The path must contain "animation/animation" or "cinema/cinema".
func DialectFromURL(url string) (Dialect, bool) {
	switch {
	case strings.Contains(url, "animation/animation"):
		return DialectAnimation, true
	case strings.Contains(url, "cinema/cinema"):
		return DialectCinema, true
	}
	return "", false
}

// BucketSize returns the id bucket used by the dialect's image paths.
func (d Dialect) BucketSize() int {
	if d == DialectCinema {
		return 10000
	}
	return 1000
}

// Bucket rounds id up to the next multiple of the dialect's bucket size.
func (d Dialect) Bucket(id int) int {
	size := d.BucketSize()
	return (id + size - 1) / size * size
}

// CoverURL builds the remote cover image URL of an item.
func CoverURL(host string, id int, d Dialect) string {
	return fmt.Sprintf("%s/%s/img/%d/%d/1.jpg", strings.TrimRight(host, "/"), d, d.Bucket(id), id)
}

// GalleryURL builds the URL of an item's frame gallery page.
func GalleryURL(host string, id int, d Dialect) string {
	return fmt.Sprintf("%s/%s/%s_photos.php?id=%d", strings.TrimRight(host, "/"), d, d, id)
}

// CoverKey is the local image key of an item's cover.
func CoverKey(id int) string {
	return fmt.Sprintf("%s/%d/1.jpg", SourceName, id)
}

// FrameKey is the local image key of one frame of an item.
func FrameKey(id int, frame, ext string) string {
	return fmt.Sprintf("%s/%d/%s%s", SourceName, id, frame, ext)
}

var itemIDRe = regexp.MustCompile(`id=(\d+)`)

// ParseItemID extracts the numeric item id from a catalog URL.
// It returns 0 when the URL carries no id.
func ParseItemID(url string) int {
	m := itemIDRe.FindStringSubmatch(url)
	if m == nil {
		return 0
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return id
}

// IsHostURL reports whether url is located on host.
func IsHostURL(host, url string) bool {
	host = strings.TrimRight(host, "/")
	if host == "" || !strings.HasPrefix(url, host) {
		return false
	}
	rest := url[len(host):]
	return rest == "" || rest[0] == '/' || rest[0] == '?'
}

// RepairSourceURL restores the slash lost between the host and the dialect
// segment in links stored by older releases, e.g.
// "http://www.world-art.ruanimation/..." becomes ".../animation/...".
func RepairSourceURL(host, url string) string {
	host = strings.TrimRight(host, "/")
	for _, d := range []Dialect{DialectAnimation, DialectCinema} {
		broken := host + string(d) + "/"
		if strings.HasPrefix(url, broken) {
			return host + "/" + url[len(host):]
		}
	}
	return url
}

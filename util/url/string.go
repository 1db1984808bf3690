package url

import (
	"net/url"
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// IsRemote returns true if <s> is an HTTP or HTTPS URL
func IsRemote(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return lo.Contains([]string{"http", "https"}, strings.ToLower(u.Scheme)) && u.Host != ""
}

// FileName returns last element of path of URL <s> or error if it can't be parsed or has no file name
func FileName(s string) (string, error) {
	u, err := url.Parse(s)
	if err != nil {
		return "", errors.Wrap(err, "Can't parse URL to get file name")
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", errors.Newf("URL %v has no file name", s)
	}
	return name, nil
}

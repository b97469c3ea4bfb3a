package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	uuid "github.com/satori/go.uuid"
	"k8s.io/klog/v2"

	"github.com/bobrnor/batch-submit/internal/logging"
)

// Naming policies accepted by NewNamer.
const (
	NamingPath = "path"
	NamingUUID = "uuid"
)

var ErrUnknownNaming = errors.New("unknown naming policy")

// Namer derives a job name for a URL.
type Namer interface {
	JobName(ctx context.Context, rawURL string) (string, error)
}

// NewNamer returns the namer for a JOB_NAMING policy.
func NewNamer(policy string) (Namer, error) {
	switch policy {
	case NamingPath:
		return PathNamer{}, nil
	case NamingUUID:
		return UUIDNamer{}, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownNaming, policy)
	}
}

// PathNamer names a job after the file the URL points to, without its
// extension: https://example.com/data/report.csv becomes "report".
// URLs with an empty or root path produce "".
type PathNamer struct{}

func (PathNamer) JobName(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrMalformedInput, err.Error())
	}

	name := stripExt(fileName(rawPath(rawURL, u)))
	klog.FromContext(ctx).V(logging.INFO).Info("Submitting job for product", "name", name)
	return name, nil
}

// rawPath returns the path of rawURL exactly as written, neither decoded
// nor re-escaped.
func rawPath(rawURL string, u *url.URL) string {
	p := rawURL
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if u.Scheme != "" {
		p = p[len(u.Scheme)+1:]
	}
	if strings.HasPrefix(p, "//") {
		i := strings.Index(p[2:], "/")
		if i < 0 {
			return ""
		}
		p = p[2+i:]
	}
	return p
}

func fileName(p string) string {
	return p[strings.LastIndex(p, "/")+1:]
}

// stripExt removes the last extension. Leading dots do not start an
// extension, so ".env" and "..foo" are returned as is.
func stripExt(name string) string {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 || strings.TrimLeft(name[:dot], ".") == "" {
		return name
	}
	return name[:dot]
}

// UUIDNamer names every job with a fresh random v4 UUID.
type UUIDNamer struct{}

func (UUIDNamer) JobName(context.Context, string) (string, error) {
	return uuid.NewV4().String(), nil
}

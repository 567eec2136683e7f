// Package wordlist acquires and caches the diceware wordlist.
//
// The canonical source is the EFF large wordlist: 7776 entries, one per line,
// each prefixed by five base-6 dice digits and a tab. Its checksum is pinned
// at compile time; a list that fails verification is never used and never
// written to the cache.
package wordlist

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PolarWolf314/tuatara/internal/errors"
	logger "github.com/PolarWolf314/tuatara/internal/logging"
)

const (
	// SourceURL is the canonical download location for the EFF large wordlist.
	SourceURL = "https://www.eff.org/files/2016/07/18/eff_large_wordlist.txt"

	// SourceChecksum is the pinned SHA-256 of the canonical wordlist. It is
	// compiled in rather than fetched, so the download source never gets to
	// vouch for itself.
	SourceChecksum = "addd35536511597a02fa0a9ff1e5284677b8883b83e986e43f15a3db996b903e"

	// CacheFilename is versioned so stale cache formats are detectable.
	CacheFilename = "eff_large_wordlist.v1.txt"

	// ExpectedWords is the fixed size of the EFF large list (6^5 entries).
	ExpectedWords = 7776

	downloadTimeout = 15 * time.Second
	maxAttempts     = 3
	retryBaseDelay  = 500 * time.Millisecond
	retryMaxDelay   = 10 * time.Second
)

// List is a verified, parsed wordlist.
type List struct {
	Source   string
	Path     string
	Words    []string
	LoadedAt time.Time
}

// Len returns the number of words in the list.
func (l *List) Len() int { return len(l.Words) }

// Word returns the word at index i (0-based).
func (l *List) Word(i int) string { return l.Words[i] }

// Provider resolves a wordlist from cache or network.
type Provider struct {
	URL      string
	Checksum string
	Client   *http.Client
	Log      logger.Logger
}

// NewProvider returns a Provider wired to the canonical EFF source.
func NewProvider(log logger.Logger) *Provider {
	return &Provider{
		URL:      SourceURL,
		Checksum: SourceChecksum,
		Client:   &http.Client{Timeout: downloadTimeout},
		Log:      log,
	}
}

// DefaultCacheDir returns the wordlist cache directory under the user's
// configuration path.
func DefaultCacheDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, "tuatara"), nil
}

// Ensure returns a verified wordlist, loading from the cache when a valid
// copy exists and downloading otherwise. A fresh download is verified against
// the pinned checksum and persisted atomically before it is returned.
func (p *Provider) Ensure(ctx context.Context, cacheDir string) (*List, error) {
	cachePath := filepath.Join(cacheDir, CacheFilename)

	if contents, err := os.ReadFile(cachePath); err == nil {
		if p.Verify(contents) == nil {
			p.Log.Debugf("Using cached wordlist at %s", cachePath)
			return p.parse(contents, cachePath)
		}
		p.Log.WarnfUser("Cached wordlist at %s failed verification, redownloading", cachePath)
	}

	contents, err := p.download(ctx)
	if err != nil {
		return nil, err
	}

	// Checksum mismatch is a hard stop: no retry, no cache write.
	if err := p.Verify(contents); err != nil {
		return nil, err
	}

	if err := p.persist(cacheDir, cachePath, contents); err != nil {
		return nil, err
	}
	p.Log.Infof("Wordlist cached at %s", cachePath)

	return p.parse(contents, cachePath)
}

// download fetches the wordlist with a bounded number of attempts, backing
// off exponentially between transient failures. Cancellation of ctx stops
// the retry loop immediately.
func (p *Provider) download(ctx context.Context) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			delay := backoff(attempt - 1)
			p.Log.Debugf("Retrying wordlist download in %v (attempt %d/%d)", delay, attempt, maxAttempts)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", errors.ErrWordlistDownload, ctx.Err())
			}
		}

		contents, err := p.fetch(ctx)
		if err == nil {
			return contents, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		p.Log.Warnf("Wordlist download attempt %d failed: %v", attempt, err)
	}
	return nil, fmt.Errorf("%w after %d attempts: %v", errors.ErrWordlistDownload, maxAttempts, lastErr)
}

func (p *Provider) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, p.URL)
	}

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(contents) == 0 {
		return nil, fmt.Errorf("downloaded wordlist was empty")
	}
	return contents, nil
}

func backoff(failures int) time.Duration {
	delay := retryBaseDelay << (failures - 1)
	if delay > retryMaxDelay {
		delay = retryMaxDelay
	}
	return delay
}

// Verify checks contents against the pinned checksum.
func (p *Provider) Verify(contents []byte) error {
	sum := sha256.Sum256(contents)
	if hex.EncodeToString(sum[:]) != p.Checksum {
		return errors.ErrChecksumMismatch
	}
	return nil
}

// persist writes contents to the cache atomically: a temp file in the same
// directory, then a rename, so readers never observe a partial file.
func (p *Provider) persist(cacheDir, cachePath string, contents []byte) error {
	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrWordlistCache, err)
	}

	tmp, err := os.CreateTemp(cacheDir, CacheFilename+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrWordlistCache, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(contents); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", errors.ErrWordlistCache, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", errors.ErrWordlistCache, err)
	}
	if err := os.Rename(tmpName, cachePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %v", errors.ErrWordlistCache, err)
	}
	return nil
}

// parse splits verified contents into words, dropping the dice-digit prefix.
func (p *Provider) parse(contents []byte, path string) (*List, error) {
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		_, word, found := strings.Cut(line, "\t")
		if !found || word == "" {
			return nil, fmt.Errorf("%w: malformed wordlist line %q", errors.ErrWordlistCache, line)
		}
		words = append(words, word)
	}
	if len(words) != ExpectedWords {
		return nil, fmt.Errorf("%w: expected %d words, found %d", errors.ErrWordlistCache, ExpectedWords, len(words))
	}
	return &List{
		Source:   p.URL,
		Path:     path,
		Words:    words,
		LoadedAt: time.Now(),
	}, nil
}

package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var ErrInvalidSpotifyURL = errors.New("invalid spotify url")

var spotifyKinds = map[string]bool{
	"track":    true,
	"album":    true,
	"playlist": true,
	"episode":  true,
	"show":     true,
	"artist":   true,
}

// SpotifyEmbedURL converts a Spotify share link or URI into the
// open.spotify.com/embed form used by iframes.
func SpotifyEmbedURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if rest, ok := strings.CutPrefix(raw, "spotify:"); ok {
		parts := strings.Split(rest, ":")
		if len(parts) != 2 {
			return "", fmt.Errorf("%w: %s", ErrInvalidSpotifyURL, raw)
		}
		return embedURL(parts[0], parts[1], raw)
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() != "open.spotify.com" {
		return "", fmt.Errorf("%w: %s", ErrInvalidSpotifyURL, raw)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) > 0 && segments[0] == "embed" {
		segments = segments[1:]
	}
	if len(segments) > 0 && strings.HasPrefix(segments[0], "intl-") {
		segments = segments[1:]
	}
	if len(segments) != 2 {
		return "", fmt.Errorf("%w: %s", ErrInvalidSpotifyURL, raw)
	}
	return embedURL(segments[0], segments[1], raw)
}

func embedURL(kind, id, raw string) (string, error) {
	if !spotifyKinds[kind] || id == "" {
		return "", fmt.Errorf("%w: %s", ErrInvalidSpotifyURL, raw)
	}
	return "https://open.spotify.com/embed/" + kind + "/" + url.PathEscape(id), nil
}

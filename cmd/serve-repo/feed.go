package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/net64plus/net64update"
)

type feedHandler struct {
	root   string
	prefix string
	files  http.Handler
	log    logrus.FieldLogger
}

func newFeedHandler(root, prefix string, log logrus.FieldLogger) http.Handler {
	prefix = cleanPrefix(prefix)
	handler := &feedHandler{
		root:   root,
		prefix: prefix,
		files:  http.StripPrefix(prefix, http.FileServer(http.Dir(root))),
		log:    log,
	}
	mux := http.NewServeMux()
	mux.Handle(prefix+"/", WithLogging(log, handler))
	return mux
}

func cleanPrefix(prefix string) string {
	prefix = path.Join("/", prefix)
	if prefix == "/" {
		return ""
	}
	return prefix
}

func (h *feedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, h.prefix), "/"), "/")
	if len(parts) != 3 || parts[2] != net64update.DefaultHttpFeed || parts[0] == ".." || parts[1] == ".." {
		h.files.ServeHTTP(w, r)
		return
	}
	dir := filepath.Join(h.root, parts[0], parts[1])
	if info, err := os.Stat(filepath.Join(dir, net64update.DefaultHttpFeed)); err == nil && info.Mode().IsRegular() {
		// a static feed takes precedence
		h.files.ServeHTTP(w, r)
		return
	}

	releases, err := listReleases(dir)
	if err != nil {
		if os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		h.log.WithError(err).Errorf("cannot list releases of %s/%s", parts[0], parts[1])
		http.Error(w, "cannot list releases", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(releases); err != nil {
		h.log.WithError(err).Warn("cannot write release feed")
	}
}

// listReleases returns a release per tag directory, newest version first.
// Asset URLs are relative to the repository directory.
func listReleases(dir string) ([]*net64update.HttpRelease, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type tagged struct {
		version net64update.Version
		release *net64update.HttpRelease
	}
	list := make([]tagged, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		tag := entry.Name()
		version, err := net64update.ParseVersion(tag)
		if err != nil {
			continue
		}
		release, err := readRelease(filepath.Join(dir, tag), tag)
		if err != nil {
			return nil, err
		}
		list = append(list, tagged{version, release})
	}

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].version.GreaterThan(list[j].version)
	})
	releases := make([]*net64update.HttpRelease, len(list))
	assetID := int64(0)
	for i, item := range list {
		item.release.ID = int64(len(list) - i)
		for _, asset := range item.release.Assets {
			assetID++
			asset.ID = assetID
		}
		releases[i] = item.release
	}
	return releases, nil
}

func readRelease(dir, tag string) (*net64update.HttpRelease, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	release := &net64update.HttpRelease{
		TagName:    tag,
		Name:       tag,
		Prerelease: strings.Contains(tag, "-"),
		Assets:     []*net64update.HttpAsset{},
	}
	var published time.Time
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, err
		}
		if info.ModTime().After(published) {
			published = info.ModTime()
		}
		release.Assets = append(release.Assets, &net64update.HttpAsset{
			Name: entry.Name(),
			Size: int(info.Size()),
			URL:  path.Join(tag, entry.Name()),
		})
	}
	release.PublishedAt = published.UTC()
	return release, nil
}

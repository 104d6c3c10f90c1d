package net64update

import "fmt"

// Stream is one of the two release feeds followed by the launcher
type Stream int

const (
	// StreamApplication is the launcher itself
	StreamApplication Stream = iota
	// StreamServer is the companion server executable
	StreamServer
)

const (
	applicationSlug = "tarnadas/net64plus"
	serverSlug      = "tarnadas/net64plus-server"
)

func (s Stream) String() string {
	switch s {
	case StreamApplication:
		return "app"
	case StreamServer:
		return "server"
	default:
		return fmt.Sprintf("Stream(%d)", int(s))
	}
}

// ParseStream accepts "app" (or "application") and "server"
func ParseStream(name string) (Stream, error) {
	switch name {
	case "app", "application":
		return StreamApplication, nil
	case "server":
		return StreamServer, nil
	}
	return 0, fmt.Errorf("unknown release stream %q, expected \"app\" or \"server\"", name)
}

// StreamRepository returns the repository publishing the stream
func StreamRepository(stream Stream) Repository {
	if stream == StreamServer {
		return ParseSlug(serverSlug)
	}
	return ParseSlug(applicationSlug)
}

// NewApplicationUpdater checks the launcher releases against its own build version.
// A nil source means GitHub.
func NewApplicationUpdater(source Source, version string) (*Updater, error) {
	return NewUpdater(Config{
		Source:         source,
		Repository:     StreamRepository(StreamApplication),
		CurrentVersion: StaticVersion(version),
	})
}

// NewServerUpdater checks the companion server releases. installedVersion is asked on every check
// and returns "" when no server is installed yet.
// A nil source means GitHub.
func NewServerUpdater(source Source, installedVersion VersionFunc) (*Updater, error) {
	return NewUpdater(Config{
		Source:         source,
		Repository:     StreamRepository(StreamServer),
		CurrentVersion: installedVersion,
	})
}

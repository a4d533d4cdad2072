package bootstrap

import "log/slog"

type release struct {
	name string
	fn   func()
}

// releaseStack holds the release action of every resource acquired so far.
// Unwinding runs them in reverse order of registration.
type releaseStack struct {
	releases []release
	logger   *slog.Logger
}

func (s *releaseStack) push(name string, fn func()) {
	s.releases = append(s.releases, release{name: name, fn: fn})
}

// mark returns a position that unwindTo can later release back down to.
func (s *releaseStack) mark() int {
	return len(s.releases)
}

func (s *releaseStack) unwindTo(mark int) {
	for len(s.releases) > mark {
		last := s.releases[len(s.releases)-1]
		s.releases = s.releases[:len(s.releases)-1]

		if s.logger != nil {
			s.logger.Debug("releasing", slog.String("resource", last.name))
		}
		last.fn()
	}
}

func (s *releaseStack) unwind() {
	s.unwindTo(0)
}

func (s *releaseStack) len() int {
	return len(s.releases)
}

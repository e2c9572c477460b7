package staging

import (
	"sync"

	"github.com/google/uuid"
)

// previews tracks live preview handles so leaked ones can be detected.
var previews = struct {
	sync.Mutex
	live map[string]File
}{live: make(map[string]File)}

// Preview is an owned handle on a staged file's local preview.
// It must be released when the staged file is replaced or cleared.
type Preview struct {
	token string

	once sync.Once
}

func newPreview(f File) *Preview {
	p := &Preview{token: "preview://" + uuid.New().String()}
	previews.Lock()
	previews.live[p.token] = f
	previews.Unlock()
	return p
}

// URL returns the local preview reference; invalid once released.
func (p *Preview) URL() string { return p.token }

// Release revokes the handle. Safe to call more than once.
func (p *Preview) Release() {
	p.once.Do(func() {
		previews.Lock()
		delete(previews.live, p.token)
		previews.Unlock()
	})
}

// Resolve returns the staged file behind a live preview reference.
func Resolve(url string) (File, bool) {
	previews.Lock()
	defer previews.Unlock()
	f, ok := previews.live[url]
	return f, ok
}

// LivePreviews reports how many preview handles have not been released.
func LivePreviews() int {
	previews.Lock()
	defer previews.Unlock()
	return len(previews.live)
}

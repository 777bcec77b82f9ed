//go:build ci

package sound

type SoundManager struct{}

func NewSoundManager(string) *SoundManager {
	return &SoundManager{}
}

func (sm *SoundManager) Init() error {
	return nil
}

func (sm *SoundManager) Play(Effect) {
	// No-op
}

func (sm *SoundManager) Close() {
	// No-op
}

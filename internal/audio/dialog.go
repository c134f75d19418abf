package audio

import (
	"errors"

	"github.com/ncruces/zenity"
)

// PickSound asks for a sound file with the native file dialog. Cancelling
// keeps current.
func PickSound(current string) (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose Spell Sound"),
		zenity.Filename(current),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return current, nil
		}
		return "", err
	}
	return filename, nil
}

package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/ncruces/zenity"
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
	"github.com/iburimskiy/galaxy-generator/internal/viewer"
)

// Observers fans commit outcomes out to every non-nil member, in order.
type Observers []viewer.Observer

func (o Observers) Regenerated(p galaxy.Parameters, took time.Duration) {
	for _, ob := range o {
		if ob != nil {
			ob.Regenerated(p, took)
		}
	}
}

func (o Observers) Rejected(err error) {
	for _, ob := range o {
		if ob != nil {
			ob.Rejected(err)
		}
	}
}

// Notifier raises a desktop notification when a commit is rejected.
type Notifier struct {
	Title string
}

func NewNotifier(title string) *Notifier { return &Notifier{Title: title} }

func (n *Notifier) Regenerated(galaxy.Parameters, time.Duration) {}

func (n *Notifier) Rejected(err error) {
	if err == nil {
		return
	}
	if nerr := zenity.Notify(err.Error(), zenity.Title(n.Title), zenity.WarningIcon); nerr != nil {
		log.Debug().Err(nerr).Msg("notification failed")
	}
}

// ColorPicker asks the user for a color. It returns zenity.ErrCanceled when
// the user backs out.
type ColorPicker interface {
	PickColor(title string, current colorful.Color) (colorful.Color, error)
}

type zenityPicker struct{}

func (zenityPicker) PickColor(title string, current colorful.Color) (colorful.Color, error) {
	c, err := zenity.SelectColor(zenity.Title(title), zenity.Color(current))
	if err != nil {
		return current, err
	}
	picked, ok := colorful.MakeColor(c)
	if !ok {
		return current, errors.New("picked color is fully transparent")
	}
	return picked, nil
}

// windowPresenter drives ebiten's fullscreen mode.
type windowPresenter struct{}

func (windowPresenter) IsFullscreen() bool    { return ebiten.IsFullscreen() }
func (windowPresenter) SetFullscreen(on bool) { ebiten.SetFullscreen(on) }

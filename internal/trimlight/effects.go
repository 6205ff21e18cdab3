package trimlight

import (
	"context"
	"fmt"

	"github.com/dokzlo13/trimlight/internal/errs"
)

// Parameter ranges accepted by the controller.
const (
	MaxBuiltinMode = 179
	MaxCustomMode  = 16
	MaxSpeed       = 255
	MaxBrightness  = 255
	MinPixelLen    = 1
	MaxPixelLen    = 90
	MinInterval    = 1
	MaxInterval    = 3600
)

const (
	previewEndpoint  = "/device/effect/preview"
	overlayEndpoint  = "/device/effect/overlay"
	combinedEndpoint = "/device/effect/combined/set"
)

// BuiltinPreview plays one of the built-in animations without saving it.
type BuiltinPreview struct {
	Mode       int
	Speed      int
	Brightness int
	PixelLen   int
	Reverse    bool
}

// Validate checks the parameter ranges.
func (p BuiltinPreview) Validate() error {
	switch {
	case p.Mode < 0 || p.Mode > MaxBuiltinMode:
		return errs.Validation(fmt.Sprintf("Invalid mode. Must be between 0 and %d", MaxBuiltinMode))
	case p.Speed < 0 || p.Speed > MaxSpeed:
		return errs.Validation(fmt.Sprintf("Invalid speed. Must be between 0 and %d", MaxSpeed))
	case p.Brightness < 0 || p.Brightness > MaxBrightness:
		return errs.Validation(fmt.Sprintf("Invalid brightness. Must be between 0 and %d", MaxBrightness))
	case p.PixelLen < MinPixelLen || p.PixelLen > MaxPixelLen:
		return errs.Validation(fmt.Sprintf("Invalid pixel length. Must be between %d and %d", MinPixelLen, MaxPixelLen))
	}
	return nil
}

// CustomPreview plays a custom animation over explicit pixel runs.
type CustomPreview struct {
	Mode       int
	Speed      int
	Brightness int
	Pixels     []Pixel
}

// Validate checks the parameter ranges.
func (p CustomPreview) Validate() error {
	switch {
	case p.Mode < 0 || p.Mode > MaxCustomMode:
		return errs.Validation(fmt.Sprintf("Invalid custom mode. Must be between 0 and %d", MaxCustomMode))
	case p.Speed < 0 || p.Speed > MaxSpeed:
		return errs.Validation(fmt.Sprintf("Invalid speed. Must be between 0 and %d", MaxSpeed))
	case p.Brightness < 0 || p.Brightness > MaxBrightness:
		return errs.Validation(fmt.Sprintf("Invalid brightness. Must be between 0 and %d", MaxBrightness))
	}
	return nil
}

// NewEffect describes an effect to store on the device. Nil fields are sent as null.
type NewEffect struct {
	Name       string
	Mode       int
	Speed      int
	Brightness int
	PixelLen   *int
	Reverse    *bool
	Pixels     []Pixel
}

// EffectUpdate lists the fields to change on a stored effect. Nil fields keep
// the stored value.
type EffectUpdate struct {
	Name       *string
	Mode       *int
	Speed      *int
	Brightness *int
	PixelLen   *int
	Reverse    *bool
	Pixels     []Pixel
}

// effectPayload is the wire form of an effect in preview, add and update requests.
type effectPayload struct {
	ID         *int    `json:"id,omitempty"`
	Name       *string `json:"name,omitempty"`
	Category   int     `json:"category"`
	Mode       int     `json:"mode"`
	Speed      int     `json:"speed"`
	Brightness int     `json:"brightness"`
	PixelLen   *int    `json:"pixelLen"`
	Reverse    *bool   `json:"reverse"`
	Pixels     []Pixel `json:"pixels"`
}

type builtinPayload struct {
	Category   int  `json:"category"`
	Mode       int  `json:"mode"`
	Speed      int  `json:"speed"`
	Brightness int  `json:"brightness"`
	PixelLen   int  `json:"pixelLen"`
	Reverse    bool `json:"reverse"`
}

type customPayload struct {
	Category   int     `json:"category"`
	Mode       int     `json:"mode"`
	Speed      int     `json:"speed"`
	Brightness int     `json:"brightness"`
	Pixels     []Pixel `json:"pixels"`
}

// PreviewBuiltinEffect validates p and plays it on the device.
func (c *Client) PreviewBuiltinEffect(ctx context.Context, deviceID string, p BuiltinPreview) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, previewEndpoint, deviceID, builtinPayload{
		Category:   CategoryBuiltIn,
		Mode:       p.Mode,
		Speed:      p.Speed,
		Brightness: p.Brightness,
		PixelLen:   p.PixelLen,
		Reverse:    p.Reverse,
	})
}

// PreviewCustomEffect validates p and plays it on the device.
func (c *Client) PreviewCustomEffect(ctx context.Context, deviceID string, p CustomPreview) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.post(ctx, previewEndpoint, deviceID, customPayload{
		Category:   CategoryCustom,
		Mode:       p.Mode,
		Speed:      p.Speed,
		Brightness: p.Brightness,
		Pixels:     p.Pixels,
	})
}

// AddEffect stores a new effect on the device.
func (c *Client) AddEffect(ctx context.Context, deviceID string, e NewEffect) (*Result, error) {
	name := e.Name
	return c.post(ctx, "/device/effect/add", deviceID, effectPayload{
		Name:       &name,
		Category:   CategorySaved,
		Mode:       e.Mode,
		Speed:      e.Speed,
		Brightness: e.Brightness,
		PixelLen:   e.PixelLen,
		Reverse:    e.Reverse,
		Pixels:     e.Pixels,
	})
}

// UpdateEffect merges u into the stored effect and writes it back.
func (c *Client) UpdateEffect(ctx context.Context, deviceID string, effectID int, u EffectUpdate) (*Result, error) {
	current, err := c.storedEffect(ctx, deviceID, effectID)
	if err != nil {
		return nil, err
	}

	p := effectPayload{
		ID:         &effectID,
		Name:       &current.Name,
		Category:   current.Category,
		Mode:       current.Mode,
		Speed:      current.Speed,
		Brightness: current.Brightness,
		PixelLen:   current.PixelLen,
		Reverse:    current.Reverse,
		Pixels:     current.Pixels,
	}
	if u.Name != nil {
		p.Name = u.Name
	}
	if u.Mode != nil {
		p.Mode = *u.Mode
	}
	if u.Speed != nil {
		p.Speed = *u.Speed
	}
	if u.Brightness != nil {
		p.Brightness = *u.Brightness
	}
	if u.PixelLen != nil {
		p.PixelLen = u.PixelLen
	}
	if u.Reverse != nil {
		p.Reverse = u.Reverse
	}
	if u.Pixels != nil {
		p.Pixels = u.Pixels
	}

	return c.post(ctx, "/device/effect/update", deviceID, p)
}

// DeleteEffect removes a stored effect.
func (c *Client) DeleteEffect(ctx context.Context, deviceID string, effectID int) (*Result, error) {
	return c.post(ctx, "/device/effect/delete", deviceID, map[string]any{"id": effectID})
}

// ViewEffect previews a stored effect with its saved parameters.
func (c *Client) ViewEffect(ctx context.Context, deviceID string, effectID int) (*Result, error) {
	e, err := c.storedEffect(ctx, deviceID, effectID)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, previewEndpoint, deviceID, effectPayload{
		Category:   e.Category,
		Mode:       e.Mode,
		Speed:      e.Speed,
		Brightness: e.Brightness,
		PixelLen:   e.PixelLen,
		Reverse:    e.Reverse,
		Pixels:     e.Pixels,
	})
}

func (c *Client) storedEffect(ctx context.Context, deviceID string, effectID int) (Effect, error) {
	details, err := c.DeviceDetails(ctx, deviceID)
	if err != nil {
		return Effect{}, err
	}
	e, ok := details.FindEffect(effectID)
	if !ok {
		return Effect{}, errs.NotFound(fmt.Sprintf("Effect %d not found", effectID))
	}
	return e, nil
}

// ValidateCombined checks a combined effect request.
func ValidateCombined(effectIDs []int, interval int) error {
	if len(effectIDs) == 0 {
		return errs.Validation("At least one effect ID must be provided")
	}
	if interval < MinInterval || interval > MaxInterval {
		return errs.Validation(fmt.Sprintf("Interval must be between %d and %d seconds", MinInterval, MaxInterval))
	}
	return nil
}

// SetCombinedEffect plays the given stored effects in rotation.
func (c *Client) SetCombinedEffect(ctx context.Context, deviceID string, effectIDs []int, interval int) (*Result, error) {
	if err := ValidateCombined(effectIDs, interval); err != nil {
		return nil, err
	}
	return c.post(ctx, combinedEndpoint, deviceID, CombinedEffect{EffectIDs: effectIDs, Interval: interval})
}

// ClearCombinedEffect stops the rotation.
func (c *Client) ClearCombinedEffect(ctx context.Context, deviceID string) (*Result, error) {
	return c.post(ctx, combinedEndpoint, deviceID, CombinedEffect{EffectIDs: []int{}, Interval: 0})
}

// AddOverlayEffect layers an overlay of overlayType on the target effect.
func (c *Client) AddOverlayEffect(ctx context.Context, deviceID string, overlayType, targetEffect int) (*Result, error) {
	return c.post(ctx, overlayEndpoint, deviceID, map[string]any{
		"overlayEffects": []OverlayEffect{{OverlayType: overlayType, TargetEffect: targetEffect}},
	})
}

// ClearOverlayEffects removes all overlays.
func (c *Client) ClearOverlayEffects(ctx context.Context, deviceID string) (*Result, error) {
	return c.post(ctx, overlayEndpoint, deviceID, map[string]any{
		"overlayEffects": []OverlayEffect{},
	})
}

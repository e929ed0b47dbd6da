package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"image/color"
	"math/rand"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"gorm.io/gorm"

	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
	"github.com/yardvine/yardvine-backend/internal/repos"
	"github.com/yardvine/yardvine-backend/internal/types"
)

// AvatarService renders initials avatars for clients. The PNG is stored on
// the client row itself and served from the avatar endpoint, so no object
// storage is involved.
type AvatarService interface {
	GenerateClientAvatar(client *types.Client) (bytes.Buffer, error)
	RefreshClientAvatar(ctx context.Context, tx *gorm.DB, client *types.Client) error
}

type avatarService struct {
	log        *logger.Logger
	clientRepo repos.ClientRepo

	bgColors   []color.NRGBA
	colorByHex map[string]color.NRGBA

	fontFace font.Face
}

// defaultAvatarColors is used when AVATAR_COLORS_JSON_PATH is unset.
var defaultAvatarColors = []color.NRGBA{
	{R: 0x2E, G: 0x7D, B: 0x32, A: 0xFF},
	{R: 0x15, G: 0x65, B: 0xC0, A: 0xFF},
	{R: 0xC6, G: 0x28, B: 0x28, A: 0xFF},
	{R: 0x6A, G: 0x1B, B: 0x9A, A: 0xFF},
	{R: 0xEF, G: 0x6C, B: 0x00, A: 0xFF},
	{R: 0x00, G: 0x83, B: 0x8F, A: 0xFF},
}

func NewAvatarService(baseLog *logger.Logger, clientRepo repos.ClientRepo) (AvatarService, error) {
	serviceLog := baseLog.With("service", "AvatarService")

	bgColors := defaultAvatarColors
	if path := strings.TrimSpace(os.Getenv("AVATAR_COLORS_JSON_PATH")); path != "" {
		loaded, err := loadColorsFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load avatar colors: %w", err)
		}
		if len(loaded) > 0 {
			bgColors = loaded
		}
	}

	colorByHex := make(map[string]color.NRGBA, len(bgColors))
	for _, c := range bgColors {
		colorByHex[nrgbaToHex(c)] = c
	}

	fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
	if fontPath == "" {
		return nil, fmt.Errorf("env var AVATAR_FONT is empty")
	}
	serviceLog.Info("Loading avatar font", "font", fontPath)

	face, err := loadFontFace(fontPath, 206)
	if err != nil {
		return nil, fmt.Errorf("load avatar font: %w", err)
	}

	return &avatarService{
		log:        serviceLog,
		clientRepo: clientRepo,
		bgColors:   bgColors,
		colorByHex: colorByHex,
		fontFace:   face,
	}, nil
}

func (as *avatarService) GenerateClientAvatar(client *types.Client) (bytes.Buffer, error) {
	const size = 512
	as.ensureAvatarColor(client)

	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(as.pickColor(client.AvatarColor))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initials := computeInitials(client.Name)

	dc.SetFontFace(as.fontFace)
	tw, th := dc.MeasureString(initials)
	cx, cy := float64(size)/2, float64(size)/2

	dc.SetColor(color.White)
	dc.DrawString(initials, cx-(tw/2)+5, cy+(th/2)-10)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return buf, fmt.Errorf("encode png: %w", err)
	}
	return buf, nil
}

// RefreshClientAvatar regenerates the PNG and persists it alongside the
// chosen background color. Called on create and whenever the name changes.
func (as *avatarService) RefreshClientAvatar(ctx context.Context, tx *gorm.DB, client *types.Client) error {
	buf, err := as.GenerateClientAvatar(client)
	if err != nil {
		return err
	}
	client.AvatarPNG = buf.Bytes()
	return as.clientRepo.UpdateFields(ctx, tx, client.ID, map[string]interface{}{
		"avatar_png":   client.AvatarPNG,
		"avatar_color": client.AvatarColor,
	})
}

func (as *avatarService) ensureAvatarColor(client *types.Client) {
	if n := normalizeHex(client.AvatarColor); n != "" {
		if _, ok := as.colorByHex[n]; ok {
			client.AvatarColor = n
			return
		}
	}
	pick := as.bgColors[rand.Intn(len(as.bgColors))]
	client.AvatarColor = nrgbaToHex(pick)
}

func (as *avatarService) pickColor(hexStr string) color.NRGBA {
	if h := normalizeHex(hexStr); h != "" {
		if c, ok := as.colorByHex[h]; ok {
			return c
		}
	}
	return as.bgColors[rand.Intn(len(as.bgColors))]
}

func normalizeHex(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	s = strings.ToUpper(s)
	if len(s) != 7 {
		return ""
	}
	if _, _, _, err := parseHexRGB(s); err != nil {
		return ""
	}
	return s
}

func parseHexRGB(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("expected 6 hex chars")
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid hex")
	}
	return raw[0], raw[1], raw[2], nil
}

func nrgbaToHex(c color.NRGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// computeInitials takes the first letter of the first two words of the
// client name, uppercased.
func computeInitials(name string) string {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "?"
	case 1:
		return strings.ToUpper(fields[0][:1])
	default:
		return strings.ToUpper(fields[0][:1]) + strings.ToUpper(fields[1][:1])
	}
}

func loadColorsFromFile(jsonPath string) ([]color.NRGBA, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	var colors []color.NRGBA
	if err := json.Unmarshal(data, &colors); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return colors, nil
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}

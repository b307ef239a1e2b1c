package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/signintech/gopdf"

	"food-menu-api/internal/menu"
	"food-menu-api/internal/profile"
)

type TelegramClient interface {
	SendMessage(chatID int64, text string) error
	SendDocument(chatID int64, fileData []byte, fileName string) error
}

// Service renders a profile's food recommendations as a PDF and delivers it
// to the dietitian's chat.
type Service struct {
	tgClient        TelegramClient
	dietitianChatID int64
	logger          zerolog.Logger
}

func NewService(tg TelegramClient, dietitianChatID int64, logger zerolog.Logger) *Service {
	return &Service{
		tgClient:        tg,
		dietitianChatID: dietitianChatID,
		logger:          logger.With().Str("service", "report").Logger(),
	}
}

// fontPaths are the common DejaVuSans locations on Alpine and Debian images.
var fontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

func (s *Service) SendDietitianReport(ctx context.Context, p profile.Profile, recs map[string]menu.Recommendation) error {
	s.logger.Info().Str("profile_id", p.ID.String()).Msg("generating recommendation report")

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	var fontErr error
	fontLoaded := false
	for _, path := range fontPaths {
		if err := pdf.AddTTFFont("DejaVu", path); err == nil {
			fontLoaded = true
			break
		} else {
			fontErr = err
		}
	}
	if !fontLoaded {
		return fmt.Errorf("failed to load font for PDF, ensure ttf-dejavu is installed: %w", fontErr)
	}

	if err := pdf.SetFont("DejaVu", "", 20); err != nil {
		return err
	}
	pdf.Cell(nil, "Dietary Recommendation Report")
	pdf.Br(30)

	if err := pdf.SetFont("DejaVu", "", 12); err != nil {
		return err
	}
	pdf.Cell(nil, fmt.Sprintf("Date: %s", time.Now().Format("02.01.2006 15:04")))
	pdf.Br(15)
	name := p.Username
	if p.FirstName != "" || p.LastName != "" {
		name = fmt.Sprintf("%s %s (%s)", p.FirstName, p.LastName, p.Username)
	}
	pdf.Cell(nil, fmt.Sprintf("Diner: %s", name))
	pdf.Br(15)
	for _, c := range p.Conditions {
		pdf.Cell(nil, fmt.Sprintf("Condition: %s (%s)", c.Condition, c.Severity))
		pdf.Br(15)
	}
	pdf.Br(10)

	for _, c := range p.Conditions {
		rec, ok := recs[c.Condition]
		if !ok {
			continue
		}
		if err := pdf.SetFont("DejaVu", "", 14); err != nil {
			return err
		}
		pdf.Cell(nil, fmt.Sprintf("Top picks for %s:", c.Condition))
		pdf.Br(15)

		if err := pdf.SetFont("DejaVu", "", 11); err != nil {
			return err
		}
		if len(rec.Foods) == 0 {
			pdf.Cell(nil, "- No safe foods found.")
			pdf.Br(15)
		}
		for _, food := range rec.Foods {
			line := fmt.Sprintf("- %s: %s (score %d)", food.Name, food.Reason, food.Score)
			lines, _ := pdf.SplitText(line, 500)
			for _, l := range lines {
				pdf.Cell(nil, l)
				pdf.Br(12)
			}
		}
		pdf.Cell(nil, fmt.Sprintf("Safe %d / Caution %d / Avoid %d",
			rec.TotalSafe, rec.TotalCaution, rec.TotalAvoid))
		pdf.Br(20)
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	fileName := fmt.Sprintf("recommendations_%s.pdf", p.ID.String())
	if err := s.tgClient.SendDocument(s.dietitianChatID, buf.Bytes(), fileName); err != nil {
		s.logger.Error().Err(err).Msg("failed to deliver report")
		return err
	}
	s.logger.Info().Str("file", fileName).Msg("report delivered")
	return nil
}

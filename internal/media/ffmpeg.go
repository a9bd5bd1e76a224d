package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Converter shells out to ffmpeg for transcoding and thumbnail extraction.
type Converter struct {
	ffmpegPath string
	log        *logrus.Logger
}

func NewConverter(ffmpegPath string, log *logrus.Logger) *Converter {
	return &Converter{ffmpegPath: ffmpegPath, log: log}
}

// ConvertToMP4 transcodes input into an H.264/AAC MP4 at output. yuv420p is
// forced because browsers refuse other pixel formats. A failed run removes
// whatever partial output ffmpeg left behind.
func (c *Converter) ConvertToMP4(ctx context.Context, input, output string) error {
	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-i", input,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-pix_fmt", "yuv420p",
		"-y",
		output,
	)

	c.log.WithFields(logrus.Fields{"input": input, "output": output}).Info("Converting video to mp4")

	if out, err := cmd.CombinedOutput(); err != nil {
		c.log.WithError(err).Errorf("ffmpeg conversion failed: %s", out)
		if rmErr := os.Remove(output); rmErr != nil && !os.IsNotExist(rmErr) {
			c.log.WithError(rmErr).Warnf("Failed to remove partial output %s", output)
		}
		return fmt.Errorf("media: convert %s: %w", input, err)
	}
	return nil
}

// GenerateThumbnail grabs a single frame offsetSeconds into the video and
// writes it as a JPEG.
func (c *Converter) GenerateThumbnail(ctx context.Context, videoPath, thumbnailPath string, offsetSeconds int) error {
	cmd := exec.CommandContext(ctx, c.ffmpegPath,
		"-ss", fmt.Sprintf("%d", offsetSeconds),
		"-i", videoPath,
		"-vframes", "1",
		"-y",
		thumbnailPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		c.log.WithError(err).Errorf("ffmpeg thumbnail failed: %s", out)
		return fmt.Errorf("media: thumbnail %s: %w", videoPath, err)
	}
	return nil
}

package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"

	"github.com/srlehn/sixelcat"
	"github.com/srlehn/sixelcat/config"
	"github.com/srlehn/sixelcat/imgfile"
	"github.com/srlehn/sixelcat/internal/errors"
	"github.com/srlehn/sixelcat/internal/logx"
)

// show writes the sixel stream of imgFile followed by a newline to w.
func show(w io.Writer, imgFile string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if len(logFileFlag) > 0 {
		cfg.LogFile = logFileFlag
	}
	opts, err := cfg.Options()
	if err != nil {
		return err
	}
	if len(cfg.LogFile) > 0 {
		lvl, err := cfg.Level()
		if err != nil {
			return err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.New(err)
		}
		defer f.Close()
		opts = append(opts, sixelcat.SetSLogger(slog.NewTextHandler(f, &slog.HandlerOptions{Level: lvl, AddSource: true}), true))
	}
	enc, err := sixelcat.New(opts...)
	if err != nil {
		return err
	}

	img, err := imgfile.Decode(imgFile)
	if logx.IsErr(err, enc, slog.LevelError, `file`, imgFile) {
		return err
	}
	rsz, err := cfg.ResizerImpl()
	if err != nil {
		return err
	}
	img, err = imgfile.FitWith(img, cfg.MaxWidth, cfg.MaxHeight, rsz)
	if logx.IsErr(err, enc, slog.LevelError, `file`, imgFile, `resizer`, rsz.Name()) {
		return err
	}

	var buf bytes.Buffer
	if err := enc.EncodeImage(&buf, img); logx.IsErr(err, enc, slog.LevelError, `file`, imgFile) {
		return err
	}
	sixelStr, err := sixelcat.Text(buf.Bytes())
	if logx.IsErr(err, enc, slog.LevelError, `file`, imgFile) {
		return err
	}
	logx.Info(`image printed`, enc, `file`, imgFile, logx.Bytes(`size`, len(sixelStr)))
	n, err := io.WriteString(w, sixelStr+"\n")
	if err != nil {
		return errors.Kind(errors.ErrSinkWriteFailed, err)
	}
	if n != len(sixelStr)+1 {
		return errors.Kind(errors.ErrSinkWriteFailed, io.ErrShortWrite)
	}
	return nil
}

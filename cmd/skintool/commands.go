package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/skinview/internal/assets"
	"github.com/Faultbox/skinview/internal/config"
	"github.com/Faultbox/skinview/internal/engine/debug"
	"github.com/Faultbox/skinview/internal/engine/software"
	"github.com/Faultbox/skinview/internal/engine/texture"
	"github.com/Faultbox/skinview/internal/export"
	"github.com/Faultbox/skinview/internal/publish"
	"github.com/Faultbox/skinview/internal/view"
	"github.com/Faultbox/skinview/pkg/skin"
)

func cmdRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "config file for defaults and publishing")
	capePath := fs.String("cape", "", "cape image")
	slim := fs.Bool("slim", false, "slim arms")
	exploded := fs.Bool("exploded", false, "exploded parts")
	grid := fs.Bool("grid", false, "pixel grid")
	ortho := fs.Bool("ortho", false, "orthographic projection")
	hide := fs.String("hide", "", "comma-separated layers to hide")
	yaw := fs.Float64("yaw", 0, "yaw in degrees")
	pitch := fs.Float64("pitch", 0, "pitch in degrees")
	zoom := fs.Float64("zoom", 1, "zoom factor")
	size := fs.String("size", "", "output size WxH")
	ss := fs.Int("ss", 0, "supersampling factor")
	bg := fs.String("bg", "", "background r,g,b in [0,1]")
	format := fs.String("format", "", "png or webp")
	out := fs.String("o", "", "output file")
	doPublish := fs.Bool("publish", false, "upload the render to the configured bucket")

	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errors.New("usage: skintool render <skin> [options]")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		if cfg, err = config.LoadFile(*cfgPath); err != nil {
			return err
		}
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := cfg.ViewOptions()
	opts.Slim = opts.Slim || *slim
	opts.Exploded = opts.Exploded || *exploded
	opts.Grid = opts.Grid || *grid
	opts.Orthographic = opts.Orthographic || *ortho
	if set["yaw"] {
		opts.InitialYaw = float32(*yaw)
	}
	if set["pitch"] {
		opts.InitialPitch = float32(*pitch)
	}
	if *bg != "" {
		c, err := parseColor(*bg)
		if err != nil {
			return err
		}
		color := view.Color(c)
		opts.Background = &color
	}
	if *hide != "" {
		vis := make(map[skin.Part]bool, len(opts.Visibility))
		for p, on := range opts.Visibility {
			vis[p] = on
		}
		for _, name := range strings.Split(*hide, ",") {
			p, err := skin.ParsePart(strings.TrimSpace(name))
			if err != nil {
				return err
			}
			vis[p] = false
		}
		opts.Visibility = vis
	}

	w, h := cfg.Render.Width, cfg.Render.Height
	if *size != "" {
		if w, h, err = parseSize(*size); err != nil {
			return err
		}
	}
	supersample := cfg.Render.Supersample
	if *ss > 0 {
		supersample = *ss
	}

	tex, err := texture.LoadSkin(pos[0])
	if err != nil {
		return err
	}
	v, err := view.New(tex, opts)
	if err != nil {
		return err
	}
	if *capePath != "" {
		cape, err := texture.LoadCape(*capePath)
		if err != nil {
			return err
		}
		if err := v.SetCape(cape); err != nil {
			return err
		}
	}
	if set["zoom"] {
		v.Camera().HandleZoom(float32(*zoom-1) * v.Camera().Config().ZoomScale)
	}

	img := software.New(supersample).Render(v.Frame(w, h))

	f := cfg.Render.Format
	if *format != "" {
		f = *format
	}
	imgFormat, err := debug.ParseFormat(f)
	if err != nil {
		return err
	}
	output := *out
	if output == "" {
		output = outputName(pos[0], "render", string(imgFormat))
	} else if imgFormat, err = debug.ParseFormat(filepath.Ext(output)); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := debug.Encode(&buf, img, imgFormat); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Printf("Rendered %s (%dx%d, %s)\n", output, w, h, imgFormat)

	if *doPublish {
		p, err := publish.New(publish.Config{
			Bucket:   cfg.Publish.Bucket,
			Region:   cfg.Publish.Region,
			Endpoint: cfg.Publish.Endpoint,
			Prefix:   cfg.Publish.Prefix,
			EnvFile:  cfg.Publish.EnvFile,
		})
		if err != nil {
			return err
		}
		key, err := p.Upload(context.Background(), output, buf.Bytes(), imgFormat.MIME())
		if err != nil {
			return err
		}
		fmt.Printf("Published s3://%s/%s\n", cfg.Publish.Bucket, key)
	}
	return nil
}

func cmdFace(args []string) error {
	fs := flag.NewFlagSet("face", flag.ContinueOnError)
	out := fs.String("o", "", "output file")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errors.New("usage: skintool face <skin> [-o out.png]")
	}

	tex, err := texture.LoadSkin(pos[0])
	if err != nil {
		return err
	}
	output := *out
	if output == "" {
		output = outputName(pos[0], "face", "png")
	}
	if err := debug.WriteFile(output, texture.Face(tex)); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d)\n", output, texture.FaceSize, texture.FaceSize)
	return nil
}

func cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	capePath := fs.String("cape", "", "cape image")
	slim := fs.Bool("slim", false, "slim arms")
	exploded := fs.Bool("exploded", false, "exploded parts")
	out := fs.String("o", "", "output file")
	pos, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(pos) != 1 {
		return errors.New("usage: skintool export <skin> [-cape f] [-slim] [-o out.glb]")
	}

	tex, err := texture.LoadSkin(pos[0])
	if err != nil {
		return err
	}
	var cape *skin.Texture
	if *capePath != "" {
		if cape, err = texture.LoadCape(*capePath); err != nil {
			return err
		}
	}

	opts := export.DefaultOptions()
	opts.Exploded = *exploded
	doc, err := export.Document(skin.NewModel(*slim), tex, cape, opts)
	if err != nil {
		return err
	}
	output := *out
	if output == "" {
		output = outputName(pos[0], "", "glb")
	}
	if err := export.WriteFile(output, doc); err != nil {
		return err
	}
	fmt.Printf("Exported %s (%d meshes)\n", output, len(doc.Meshes))
	return nil
}

func cmdValidate(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: skintool validate <image>...")
	}

	failed := 0
	for _, path := range args {
		kind, err := validateFile(path)
		if err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Printf("ok    %s: %s\n", path, kind)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}

// validateFile reports what a file can be used as.
func validateFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	img, err := texture.Decode(data, path)
	if err != nil {
		return "", err
	}
	t := skin.NewTexture(img)
	if err := skin.ValidateSkin(t); err != nil {
		return "", err
	}
	if t.IsLegacy() {
		return "legacy 64x32 skin (also a valid cape)", nil
	}
	return "64x64 skin", nil
}

func cmdTemplate(args []string) error {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)
	slim := fs.Bool("slim", false, "slim arms")
	out := fs.String("o", "", "output file")
	if _, err := parseArgs(fs, args); err != nil {
		return err
	}

	output := *out
	if output == "" {
		output = "template-" + assets.Arms(*slim) + ".png"
	}
	if err := debug.WriteFile(output, texture.Template(*slim).Image()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}

func cmdCatalog(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: skintool catalog <skins.json>")
	}

	m := assets.NewManager()
	defer m.Close()
	if err := m.AddCatalog(args[0]); err != nil {
		return err
	}

	for _, slim := range []bool{false, true} {
		status := "procedural fallback"
		if _, err := m.Load(assets.TemplateKey(slim)); err == nil {
			status = "present"
		}
		fmt.Printf("template %-8s %s\n", assets.Arms(slim), status)
	}
	for _, name := range m.Names() {
		var sizes []string
		for _, slim := range []bool{false, true} {
			t, err := m.Default(name, slim)
			if err != nil {
				sizes = append(sizes, assets.Arms(slim)+": "+err.Error())
				continue
			}
			sizes = append(sizes, fmt.Sprintf("%s: %s", assets.Arms(slim), dims(t.Image())))
		}
		fmt.Printf("default  %-16s %s\n", name, strings.Join(sizes, ", "))
	}
	return nil
}

func dims(img image.Image) string {
	b := img.Bounds()
	return fmt.Sprintf("%dx%d", b.Dx(), b.Dy())
}

// outputName derives an output path next to the input.
func outputName(input, suffix, ext string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if suffix != "" {
		base += "-" + suffix
	}
	return base + "." + ext
}

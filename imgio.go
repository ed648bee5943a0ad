package steg

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Primary methods

func loadImage(imgPath string, outputLevel OutputLevel) (pixels *PixelBuffer, err error) {
	imgFile, err := os.Open(imgPath)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, "Unable to open the image!", err.Error())
		return nil, err
	}

	defer func() {
		if cerr := imgFile.Close(); cerr != nil {
			printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("Error closing the file '%v': %v", imgPath, cerr.Error()))
		}
	}()

	pixels, format, model, err := readPixels(imgFile)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, "The image couldn't be decoded:", err.Error())
		return nil, err
	}

	printlnLvl(outputLevel, OutputInfo,
		fmt.Sprintf("Image info:\n\tFormat: %v\n\tDimensions: %dx%dpx\n\tColour model: %v\n\tCapacity: %d bits (%d bytes of text)",
			format, pixels.Width, pixels.Height, colourModelToStr(model),
			Capacity(pixels.Width, pixels.Height), MaxTextBytes(pixels.Width, pixels.Height)))
	if format == "jpeg" || format == "webp" || format == "gif" {
		printlnLvl(outputLevel, OutputSteps,
			fmt.Sprintf("Warning: '%v' is a %v image. Any data hidden in it before it was last saved has likely been lost.", imgPath, format))
	}

	return pixels, nil
}

func writeImage(pixels *PixelBuffer, outPath string, outputLevel OutputLevel) (err error) {
	img := pixelsToImage(pixels)

	var encode func(io.Writer, image.Image) error
	switch ext := strings.ToLower(filepath.Ext(outPath)); ext {
	case ".png":
		encoder := png.Encoder{CompressionLevel: png.BestCompression}
		encode = encoder.Encode
	case ".bmp":
		encode = bmp.Encode
	case ".tif", ".tiff":
		encode = func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		}
	default:
		printlnLvl(outputLevel, OutputSteps, "Only lossless formats (PNG, BMP, TIFF) can hold hidden data.")
		return &UnsupportedFormatError{Format: ext}
	}

	f, err := os.Create(outPath)
	if err != nil {
		printlnLvl(outputLevel, OutputSteps, fmt.Sprintf("There was an error creating the file '%v'.", outPath))
		return err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", outPath, cerr)
		}
	}()

	if err = encode(f, img); err != nil {
		printlnLvl(outputLevel, OutputSteps, "There was an error encoding the image to the new file.")
		return fmt.Errorf("encode %s: %w", outPath, err)
	}

	return nil
}

// DefaultOutPath names the stego image after its cover: stego_<name>.png in the same directory.
func DefaultOutPath(imgPath string) string {
	base := filepath.Base(imgPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(imgPath), outPrefix+base+".png")
}

// Helper functions

func readPixels(r io.Reader) (pixels *PixelBuffer, format string, model color.Model, err error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", nil, &UnsupportedFormatError{Format: "<unknown>"}
		}
		return nil, "", nil, err
	}
	return imageToPixels(img), format, img.ColorModel(), nil
}

// imageToPixels flattens any image into non-premultiplied RGBA, the way a canvas hands out
// its pixel data.
func imageToPixels(img image.Image) *PixelBuffer {
	dims := img.Bounds()
	w, h := dims.Dx(), dims.Dy()
	pixels := NewPixelBuffer(w, h)
	rowLen := w * channelsPerPix

	// NRGBA already matches; everything else goes through draw for the colour conversion
	switch simg := img.(type) {
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			start := simg.PixOffset(dims.Min.X, dims.Min.Y+y)
			copy(pixels.Pix[y*rowLen:(y+1)*rowLen], simg.Pix[start:start+rowLen])
		}
	default:
		dst := &image.NRGBA{Pix: pixels.Pix, Stride: rowLen, Rect: image.Rect(0, 0, w, h)}
		draw.Draw(dst, dst.Rect, img, dims.Min, draw.Src)
	}
	return pixels
}

func pixelsToImage(pixels *PixelBuffer) *image.NRGBA {
	return &image.NRGBA{
		Pix:    pixels.Pix,
		Stride: pixels.Width * channelsPerPix,
		Rect:   image.Rect(0, 0, pixels.Width, pixels.Height),
	}
}

func colourModelToStr(model color.Model) string {
	switch model {
	case color.Alpha16Model:
		return "Alpha16"
	case color.AlphaModel:
		return "Alpha"
	case color.CMYKModel:
		return "CMYK"
	case color.Gray16Model:
		return "Gray16"
	case color.GrayModel:
		return "Gray"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.RGBAModel:
		return "RGBA"
	case color.NYCbCrAModel:
		return "NYCbCrA"
	case color.YCbCrModel:
		return "YCbCr"
	default:
		if _, ok := model.(color.Palette); ok {
			return "Paletted"
		}
		return "<Unknown>"
	}
}

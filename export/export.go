// Package export writes raster grids as grayscale images.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/svg"
	"github.com/tdewolff/staircase"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// Writer encodes a raster grid to w.
type Writer func(w io.Writer, grid *staircase.RasterGrid, scale int) error

// gray quantizes an intensity to an 8-bit gray level.
func gray(v float64) uint8 {
	v = math.Max(0.0, math.Min(1.0, v))
	return uint8(v*255.0 + 0.5)
}

// Image returns the grid as a grayscale image with every cell enlarged to scale by scale pixels. Row 0 of the grid becomes the bottom row of the image.
func Image(grid *staircase.RasterGrid, scale int) *image.Gray {
	if scale < 1 {
		panic(fmt.Sprintf("scale must be positive, got %d", scale))
	}
	img := image.NewGray(image.Rect(0, 0, grid.W, grid.H))
	for j := 0; j < grid.H; j++ {
		row := grid.Row(j)
		y := grid.H - 1 - j
		for i, v := range row {
			img.SetGray(i, y, color.Gray{gray(v)})
		}
	}
	if scale == 1 {
		return img
	}

	dst := image.NewGray(image.Rect(0, 0, scale*grid.W, scale*grid.H))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// PNGWriter writes the grid as a PNG file.
func PNGWriter() Writer {
	return func(w io.Writer, grid *staircase.RasterGrid, scale int) error {
		return png.Encode(w, Image(grid, scale))
	}
}

// JPGWriter writes the grid as a JPG file.
func JPGWriter(opts *jpeg.Options) Writer {
	return func(w io.Writer, grid *staircase.RasterGrid, scale int) error {
		return jpeg.Encode(w, Image(grid, scale), opts)
	}
}

// GIFWriter writes the grid as a GIF file.
func GIFWriter(opts *gif.Options) Writer {
	return func(w io.Writer, grid *staircase.RasterGrid, scale int) error {
		return gif.Encode(w, Image(grid, scale), opts)
	}
}

// TIFFWriter writes the grid as a TIFF file.
func TIFFWriter(opts *tiff.Options) Writer {
	return func(w io.Writer, grid *staircase.RasterGrid, scale int) error {
		return tiff.Encode(w, Image(grid, scale), opts)
	}
}

// SVGWriter writes the grid as an SVG file of scale by scale pixel cells over a black background. Horizontal runs of cells with the same gray level are drawn as a single rectangle. Row 0 of the grid becomes the bottom row of the image.
func SVGWriter() Writer {
	return func(w io.Writer, grid *staircase.RasterGrid, scale int) error {
		if scale < 1 {
			panic(fmt.Sprintf("scale must be positive, got %d", scale))
		}
		s := float64(scale)
		r := svg.New(w, s*float64(grid.W), s*float64(grid.H), &svg.Options{
			SizeUnits:     "px",
			ImageEncoding: canvas.Lossless,
		})
		style := canvas.DefaultStyle
		r.RenderPath(canvas.Rectangle(s*float64(grid.W), s*float64(grid.H)), style, canvas.Identity)
		for j := 0; j < grid.H; j++ {
			row := grid.Row(j)
			for i := 0; i < len(row); {
				level := gray(row[i])
				n := 1
				for i+n < len(row) && gray(row[i+n]) == level {
					n++
				}
				if level != 0 {
					style.Fill = canvas.Paint{Color: color.RGBA{level, level, level, 0xff}}
					m := canvas.Identity.Translate(s*float64(i), s*float64(j))
					r.RenderPath(canvas.Rectangle(s*float64(n), s), style, m)
				}
				i += n
			}
		}
		return r.Close()
	}
}

// WriterFor returns the writer matching the extension of filename.
func WriterFor(filename string) (Writer, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".png":
		return PNGWriter(), nil
	case ".jpg", ".jpeg":
		return JPGWriter(&jpeg.Options{Quality: 95}), nil
	case ".gif":
		return GIFWriter(nil), nil
	case ".tif", ".tiff":
		return TIFFWriter(&tiff.Options{Compression: tiff.Deflate}), nil
	case ".svg":
		return SVGWriter(), nil
	default:
		return nil, fmt.Errorf("unknown image format %q", ext)
	}
}

// WriteFile writes the grid to filename in the format given by its extension. No file is left behind if encoding fails.
func WriteFile(filename string, grid *staircase.RasterGrid, scale int) error {
	writer, err := WriterFor(filename)
	if err != nil {
		return err
	}
	return writeFile(filename, writer, grid, scale)
}

func writeFile(filename string, writer Writer, grid *staircase.RasterGrid, scale int) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := writer(f, grid, scale); err != nil {
		f.Close()
		os.Remove(filename)
		return fmt.Errorf("%s: %w", filename, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(filename)
		return err
	}
	staircase.Logger().Info("wrote image", "filename", filename, "width", scale*grid.W, "height", scale*grid.H)
	return nil
}

package dicom

import (
	"fmt"
	"image"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/frame"
	"github.com/suyashkumar/dicom/pkg/tag"
	xdraw "golang.org/x/image/draw"
)

// Image holds the raw intensities of a single frame.
type Image struct {
	Pixels []float64
	Rows   int
	Cols   int
	Frames int // total frames present in the source dataset
}

// Pixels extracts the first frame of the dataset's pixel data as raw
// intensities. Native frames are read straight from the stored samples;
// encapsulated frames go through the decoded image. Datasets without a
// usable pixel data element return ErrNoPixelData.
func Pixels(ds dicom.Dataset) (*Image, error) {
	elem, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, ErrNoPixelData
	}

	info, ok := elem.Value.GetValue().(dicom.PixelDataInfo)
	if !ok || len(info.Frames) == 0 {
		return nil, ErrNoPixelData
	}

	fr := info.Frames[0]
	if fr.Encapsulated {
		return encapsulatedPixels(fr, len(info.Frames))
	}

	nf := fr.NativeData
	if nf == nil {
		return nil, ErrNoPixelData
	}

	rows, cols := nf.Rows(), nf.Cols()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: frame is %dx%d", ErrInvalidFormat, rows, cols)
	}

	vals, err := rawToFloat(nf.RawDataSlice())
	if err != nil {
		return nil, err
	}

	// Interleaved samples (RGB and friends): keep the first sample of
	// each pixel so the output stays single-channel.
	if samples := len(vals) / (rows * cols); samples > 1 {
		mono := make([]float64, rows*cols)
		for i := range mono {
			mono[i] = vals[i*samples]
		}
		vals = mono
	}

	if len(vals) != rows*cols {
		return nil, fmt.Errorf("%w: %d samples for %dx%d frame", ErrInvalidFormat, len(vals), rows, cols)
	}

	return &Image{Pixels: vals, Rows: rows, Cols: cols, Frames: len(info.Frames)}, nil
}

// encapsulatedPixels decodes a compressed frame into a grayscale buffer.
func encapsulatedPixels(fr *frame.Frame, totalFrames int) (*Image, error) {
	img, err := fr.GetImage()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, err)
	}

	bounds := img.Bounds()
	gray := image.NewGray(bounds)
	xdraw.Draw(gray, bounds, img, bounds.Min, xdraw.Src)

	rows := bounds.Dy()
	cols := bounds.Dx()
	vals := make([]float64, rows*cols)
	for i, p := range gray.Pix {
		vals[i] = float64(p)
	}

	return &Image{Pixels: vals, Rows: rows, Cols: cols, Frames: totalFrames}, nil
}

func rawToFloat(raw any) ([]float64, error) {
	switch data := raw.(type) {
	case []uint8:
		return toFloat(data), nil
	case []uint16:
		return toFloat(data), nil
	case []uint32:
		return toFloat(data), nil
	case []int8:
		return toFloat(data), nil
	case []int16:
		return toFloat(data), nil
	case []int32:
		return toFloat(data), nil
	case []int64:
		return toFloat(data), nil
	default:
		return nil, fmt.Errorf("%w: unsupported pixel type %T", ErrInvalidFormat, raw)
	}
}

func toFloat[T int8 | int16 | int32 | int64 | uint8 | uint16 | uint32](data []T) []float64 {
	vals := make([]float64, len(data))
	for i, v := range data {
		vals[i] = float64(v)
	}
	return vals
}

// Window clips intensities to a configured center/width range. The bounds
// use integer division, so a width of 5 spans center-2 to center+2.
type Window struct {
	Center int
	Width  int
}

// Apply clips the values in place.
func (w Window) Apply(vals []float64) {
	lo := float64(w.Center - w.Width/2)
	hi := float64(w.Center + w.Width/2)
	for i, v := range vals {
		if v < lo {
			vals[i] = lo
		} else if v > hi {
			vals[i] = hi
		}
	}
}

// Normalize rescales intensities linearly into 0..255 using the observed
// minimum and maximum of the input. A flat input, including one produced
// by aggressive windowing, yields an all-zero buffer.
func Normalize(vals []float64) []uint8 {
	out := make([]uint8, len(vals))
	if len(vals) == 0 {
		return out
	}

	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	if hi == lo {
		return out
	}

	scale := 255.0 / (hi - lo)
	for i, v := range vals {
		out[i] = uint8((v - lo) * scale)
	}
	return out
}

// Grayscale builds an 8-bit grayscale image from normalized pixels laid
// out row-major.
func Grayscale(pixels []uint8, rows, cols int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	copy(img.Pix, pixels)
	return img
}

package imgio

import "math"

// PSNR reports the peak signal-to-noise ratio in dB between a cover
// array and its stego counterpart. Identical arrays yield +Inf;
// mismatched shapes yield 0.
func PSNR(original, stego *PixelArray) float64 {
	if original.Subpixels() != stego.Subpixels() || original.Subpixels() == 0 {
		return 0.0
	}

	var mse float64
	for i := range original.Pix {
		diff := float64(original.Pix[i]) - float64(stego.Pix[i])
		mse += diff * diff
	}
	mse /= float64(original.Subpixels())

	if mse == 0 {
		return math.Inf(1)
	}

	// PSNR = 20 * log10(MAX_SIGNAL_VALUE / sqrt(MSE)), 255 for 8-bit
	// subpixels.
	return 20 * math.Log10(255.0/math.Sqrt(mse))
}

// ValidatePSNR reports whether the given PSNR meets a quality
// threshold in dB.
func ValidatePSNR(psnr, threshold float64) bool {
	if math.IsInf(psnr, 1) {
		return true
	}
	return psnr >= threshold
}

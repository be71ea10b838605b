/*
 * SPDX-FileCopyrightText: © Hypermode Inc. <hello@hypermode.com>
 * SPDX-License-Identifier: Apache-2.0
 */

package zipfian

import "math"

// taylorThreshold is the magnitude below which log1p(x)/x and expm1(x)/x
// are evaluated by their series instead of by division.
const taylorThreshold = 1e-8

// hat holds the exponent q of the hat function h(x) = x^-q and evaluates
// its integral H and the inverse of that integral.
type hat struct {
	q float64
}

// h returns x^-q, the unnormalized mass of rank x.
func (f hat) h(x float64) float64 {
	return math.Exp(-f.q * math.Log(x))
}

// integral returns H(x) = (x^(1-q) - 1) / (1-q), the integral of h from 1
// to x. It is written as expm1(t)/t * log(x) with t = (1-q)*log(x) so that
// it stays accurate when q is close to 1.
func (f hat) integral(x float64) float64 {
	logX := math.Log(x)
	return expm1Ratio((1-f.q)*logX) * logX
}

// integralInverse returns Hinv(y) = (1 + y*(1-q))^(1/(1-q)).
func (f hat) integralInverse(y float64) float64 {
	t := y * (1 - f.q)
	if t < -1 {
		// Only reachable through rounding at the upper edge of the domain.
		t = -1
	}
	return math.Exp(log1pRatio(t) * y)
}

// log1pRatio returns log(1+x)/x.
func log1pRatio(x float64) float64 {
	if math.Abs(x) > taylorThreshold {
		return math.Log1p(x) / x
	}
	return 1 - x*(0.5-x*(1.0/3.0-0.25*x))
}

// expm1Ratio returns (exp(x)-1)/x.
func expm1Ratio(x float64) float64 {
	if math.Abs(x) > taylorThreshold {
		return math.Expm1(x) / x
	}
	return 1 + x*0.5*(1+x*(1.0/3.0)*(1+0.25*x))
}

// Package sobol generates Sobol low-discrepancy sequences: deterministic
// multidimensional point sets that cover the unit cube more evenly than
// independent uniform draws. Points are produced with the gray-code
// construction over Joe–Kuo direction numbers.
package sobol

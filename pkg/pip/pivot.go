// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package pip

import (
	"math/big"
)

// signOf classifies a single coefficient.
func signOf(v *big.Int) rowFlag {
	switch v.Sign() {
	case -1:
		return minusRow
	case 1:
		return plusRow
	default:
		return zeroRow
	}
}

// parameterSign classifies the parameter coefficients of a row: zeroRow if
// they are all zero, plusRow (resp. minusRow) if the non-zero ones are all
// positive (resp. negative) and unknownRow otherwise.
func parameterSign(row []big.Int, nvar int) rowFlag {
	var sign = zeroRow
	//
	for j := nvar + 1; j < len(row); j++ {
		fff := signOf(&row[j])
		//
		if fff == zeroRow || fff == sign {
			continue
		} else if sign != zeroRow {
			return unknownRow
		}
		//
		sign = fff
	}
	//
	return sign
}

// combineSigns determines the sign of a row's parametric constant from the
// sign of its parameter coefficients and the sign of its constant term.
// Positive coefficients with a negative constant (and vice versa) give no
// information; the parameters are non-negative, hence zero coefficients leave
// only the constant.
func combineSigns(params, constant rowFlag) rowFlag {
	switch params {
	case plusRow:
		if constant == minusRow {
			return unknownRow
		}
		//
		return plusRow
	case zeroRow:
		return constant
	case minusRow:
		if constant != minusRow {
			return unknownRow
		}
		//
		return minusRow
	default:
		return unknownRow
	}
}

// isCritic determines whether a row has no positive variable coefficient.
// Such a row cannot be made non-negative by increasing a non-basic variable.
func isCritic(row []big.Int, nvar int) bool {
	for j := 0; j < nvar; j++ {
		if row[j].Sign() > 0 {
			return false
		}
	}
	//
	return true
}

// signAfterPivot updates the sign of a row whose pivot column coefficient has
// a given sign, after pivoting on a negative row.  A positive coefficient adds
// a positive quantity, whilst a negative one adds a negative quantity whose
// magnitude is unknown.
func signAfterPivot(sign, pivot rowFlag) rowFlag {
	switch {
	case pivot == zeroRow || pivot == sign:
		return sign
	case sign == zeroRow && pivot == minusRow:
		return unknownRow
	case sign == zeroRow:
		return pivot
	default:
		return unknownRow
	}
}

// examineCoefficients determines the obvious signs of all rows whose sign is
// unknown, returning the first row found to be negative or -1 if there is
// none.  Rows whose sign is determined by the bignum column are examined
// first, since these must be used first.
func examineCoefficients(tab *tableau, nvar int, bignum int) int {
	if bignum >= 0 {
		for i := range tab.rows {
			row := &tab.rows[i]
			if row.flags != unknownRow {
				continue
			}
			//
			switch row.values[bignum].Sign() {
			case -1:
				row.flags = minusRow
				return i
			case 1:
				row.flags = plusRow
			}
		}
	}
	//
	for i := range tab.rows {
		row := &tab.rows[i]
		if row.flags != unknownRow {
			continue
		}
		//
		row.flags = combineSigns(parameterSign(row.values, nvar), signOf(&row.values[nvar]))
		//
		if row.flags == minusRow {
			return i
		}
	}
	//
	return -1
}

// choosePivotColumn selects the column for pivoting on a given row.  Amongst
// the columns with a positive coefficient in that row, this is the
// lexicographically smallest column once divided by its coefficient.  This
// returns -1 if the row has no positive variable coefficient.
func choosePivotColumn(tab *tableau, pivi int, nvar int) int {
	var (
		pivj   = -1
		pivot  *big.Int
		x, y   big.Int
		values = tab.rows[pivi].values
	)
	//
	for j := 0; j < nvar; j++ {
		foo := &values[j]
		//
		if foo.Sign() <= 0 {
			continue
		} else if pivj < 0 {
			pivj, pivot = j, foo
			continue
		}
		//
		x.SetInt64(0)
		//
		for k := range tab.rows {
			x.Mul(pivot, tab.value(k, j))
			y.Mul(tab.value(k, pivj), foo)
			x.Sub(&x, &y)
			//
			if x.Sign() != 0 {
				break
			}
		}
		//
		if x.Sign() < 0 {
			pivj, pivot = j, foo
		}
	}
	//
	return pivj
}

// pivot performs a pivoting step on a given (negative) row, which is then
// exchanged with the non-basic variable of the chosen column.  This returns
// false if the row has no positive variable coefficient, in which case it can
// never be made non-negative and the problem has no solution.
func pivot(tab *tableau, pivi int, nvar int) bool {
	if pivi < 0 || pivi >= len(tab.rows) || tab.rows[pivi].flags&unitRow != 0 {
		panic("invalid pivot row")
	}
	//
	pivj := choosePivotColumn(tab, pivi, nvar)
	if pivj < 0 {
		return false
	}
	//
	var (
		prow      = &tab.rows[pivi]
		ncol      = tab.width
		piv       big.Int
		dpiv      big.Int
		d, lpiv   big.Int
		foo, z, y big.Int
		gcd       big.Int
		nvalues   = make([]big.Int, ncol)
	)
	//
	piv.Set(&prow.values[pivj])
	dpiv.Set(&prow.denom)
	// The row which replaces the non-basic variable of the pivot column.
	for j := 0; j < ncol; j++ {
		if j == pivj {
			nvalues[j].Set(&dpiv)
		} else {
			nvalues[j].Neg(&prow.values[j])
		}
	}
	//
	for k := range tab.rows {
		row := &tab.rows[k]
		if row.flags&unitRow != 0 || k == pivi {
			continue
		}
		//
		d.GCD(nil, nil, &piv, &row.values[pivj])
		lpiv.Quo(&piv, &d)
		foo.Quo(&row.values[pivj], &d)
		row.denom.Mul(&row.denom, &lpiv)
		gcd.Set(&row.denom)
		//
		for j := 0; j < ncol; j++ {
			if j == pivj {
				z.Mul(&dpiv, &foo)
			} else {
				z.Mul(&row.values[j], &lpiv)
				y.Mul(&prow.values[j], &foo)
				z.Sub(&z, &y)
			}
			//
			row.values[j].Set(&z)
			//
			if !isOne(&gcd) {
				gcd.GCD(nil, nil, &gcd, &z)
			}
		}
		//
		if !isOne(&gcd) {
			for j := 0; j < ncol; j++ {
				row.values[j].Quo(&row.values[j], &gcd)
			}
			//
			row.denom.Quo(&row.denom, &gcd)
		}
	}
	// Swap the roles of the pivot row and the non-basic variable
	for k := range tab.rows {
		row := &tab.rows[k]
		//
		if row.flags&unitRow != 0 && row.unit == pivj {
			row.flags = plusRow
			row.values = nvalues
			row.denom.Set(&piv)
			//
			break
		}
	}
	//
	prow.flags = unitRow | zeroRow
	prow.unit = pivj
	prow.values = nil
	prow.denom.SetInt64(1)
	//
	for k := range tab.rows {
		row := &tab.rows[k]
		//
		if row.flags&unitRow == 0 {
			row.flags = signAfterPivot(row.flags, signOf(&row.values[pivj]))
		}
	}
	//
	return true
}

func isOne(v *big.Int) bool {
	return v.IsInt64() && v.Int64() == 1
}

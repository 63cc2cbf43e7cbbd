package history

import (
	"github.com/shopspring/decimal"
)

// Annual market history used by the projection engine: S&P 500 equivalent
// total returns, 10-year Treasury returns, 3-month T-Bill returns (cash
// proxy) and CPI annual changes. Sources: NYU Stern / Damodaran historical
// data, BLS.gov.
//
// This is a fixed dataset. The values must not be edited: projections saved
// by earlier releases were generated from exactly these numbers, and parity
// matters more than extending the window. All four tables are the same
// length; sampling code must index modulo Len().

var stockReturns = []float64{
	0.4381, -0.0824, -0.2512, -0.4384, -0.0864, 0.4998, -0.0119, 0.4674,
	0.3194, -0.3534, 0.2928, -0.0110, -0.1078, -0.1243, 0.1943, 0.2556,
	0.1906, 0.3640, -0.0806, 0.0548, 0.0565, 0.1831, 0.3023, 0.2368,
	0.1828, -0.0099, 0.2640, 0.2289, -0.0843, 0.1661, 0.1244, -0.1006,
	0.2379, 0.1100, -0.0873, 0.2383, 0.1606, 0.1256, -0.0994, 0.1836,
	0.3242, -0.0491, 0.2155, 0.2256, 0.0627, 0.3173, 0.1867, 0.0525,
	0.1618, 0.3124, -0.0306, 0.3049, 0.0762, 0.1008, 0.0132, 0.3758,
	0.2296, 0.3336, 0.2858, 0.2104, -0.0910, -0.1189, -0.2210, 0.2868,
	0.1088, 0.0491, 0.1579, 0.0549, -0.3700, 0.2646, 0.1506, 0.0211,
	0.1600, 0.3239, 0.1369, 0.0138, 0.1196, 0.2183, -0.0438, 0.3149,
	0.1840, 0.2861, -0.1811, 0.2688, -0.1932, 0.2659,
}

var bondReturns = []float64{
	0.0084, 0.0342, 0.0468, 0.0516, 0.0022, 0.0444, 0.0541, 0.0467,
	0.0012, 0.0502, 0.0025, 0.0267, 0.0601, 0.0238, 0.0280, 0.0225,
	0.0165, 0.0021, 0.0313, 0.0606, 0.0056, 0.0084, 0.0229, 0.0362,
	0.0096, 0.0239, 0.0356, 0.0690, 0.0043, 0.0115, 0.0197, 0.0019,
	0.0169, 0.0382, 0.0032, 0.0370, 0.0129, 0.0156, -0.0011, 0.0386,
	0.1470, 0.0943, 0.0127, 0.1586, -0.0078, 0.0140, 0.1526, 0.3097,
	0.0859, 0.1718, 0.0627, 0.1522, 0.0702, -0.0749, 0.0974, 0.2796,
	0.1892, 0.0992, 0.1424, 0.0823, -0.0393, 0.1633, 0.1756, 0.0010,
	0.0441, 0.0227, 0.0333, 0.0414, 0.2010, 0.0571, 0.0584, 0.0978,
	-0.0359, 0.1084, 0.1028, 0.0069, 0.0199, 0.0887, -0.0002, 0.1195,
	0.0744, -0.0014, -0.1112, 0.0396, -0.0116, 0.0394,
}

var cashReturns = []float64{
	0.0308, 0.0316, 0.0455, 0.0231, 0.0107, 0.0030, 0.0032, 0.0014,
	0.0002, 0.0003, 0.0003, 0.0006, 0.0038, 0.0033, 0.0038, 0.0038,
	0.0038, 0.0101, 0.0181, 0.0295, 0.0261, 0.0149, 0.0116, 0.0157,
	0.0253, 0.0293, 0.0090, 0.0154, 0.0273, 0.0258, 0.0292, 0.0393,
	0.0316, 0.0249, 0.0249, 0.0352, 0.0393, 0.0429, 0.0387, 0.0516,
	0.0583, 0.0572, 0.0545, 0.0430, 0.0299, 0.0280, 0.0358, 0.0595,
	0.0527, 0.0508, 0.0570, 0.0598, 0.0341, 0.0300, 0.0509, 0.0516,
	0.0501, 0.0525, 0.0480, 0.0455, 0.0552, 0.0349, 0.0154, 0.0116,
	0.0297, 0.0451, 0.0479, 0.0141, 0.0011, 0.0010, 0.0010, 0.0005,
	0.0007, 0.0002, 0.0002, 0.0021, 0.0094, 0.0198, 0.0473, 0.0486,
	0.0013, 0.0055, 0.0033, 0.0303, 0.0416, 0.0524,
}

var inflationRates = []float64{
	-0.0097, 0.0020, -0.0603, -0.0952, -0.1027, 0.0076, 0.0151, 0.0299,
	0.0121, 0.0283, -0.0278, 0.0000, 0.0096, 0.0972, 0.0929, 0.0316,
	0.0211, 0.0229, 0.1440, 0.0765, 0.0701, -0.0195, 0.0593, 0.0600,
	0.0086, 0.0062, -0.0050, 0.0037, 0.0303, 0.0290, 0.0176, 0.0146,
	0.0107, 0.0122, 0.0111, 0.0124, 0.0165, 0.0292, 0.0287, 0.0410,
	0.0480, 0.0546, 0.0332, 0.0341, 0.0870, 0.1234, 0.0694, 0.0486,
	0.0667, 0.0900, 0.1331, 0.1258, 0.0894, 0.0380, 0.0379, 0.0111,
	0.0435, 0.0441, 0.0465, 0.0613, 0.0309, 0.0290, 0.0275, 0.0267,
	0.0254, 0.0332, 0.0170, 0.0160, 0.0270, 0.0339, 0.0016, 0.0238,
	0.0159, 0.0300, 0.0173, 0.0150, 0.0076, 0.0291, 0.0230, 0.0121,
	0.0140, 0.0240, 0.0180, 0.0700, 0.0650, 0.0340,
}

// Series is an immutable view over the annual return and inflation tables.
// It is safe for concurrent use by any number of simulation trials.
type Series struct {
	stocks    []decimal.Decimal
	bonds     []decimal.Decimal
	cash      []decimal.Decimal
	inflation []decimal.Decimal
}

var defaultSeries = newSeries()

// Default returns the process-wide historical series.
func Default() *Series { return defaultSeries }

func newSeries() *Series {
	return &Series{
		stocks:    toDecimals(stockReturns),
		bonds:     toDecimals(bondReturns),
		cash:      toDecimals(cashReturns),
		inflation: toDecimals(inflationRates),
	}
}

func toDecimals(values []float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}

// Len returns the number of historical years in the dataset.
func (s *Series) Len() int { return len(s.stocks) }

// StockReturn returns the stock return for historical year index i.
func (s *Series) StockReturn(i int) decimal.Decimal { return s.stocks[i] }

// BondReturn returns the bond return for historical year index i.
func (s *Series) BondReturn(i int) decimal.Decimal { return s.bonds[i] }

// CashReturn returns the cash return for historical year index i.
func (s *Series) CashReturn(i int) decimal.Decimal { return s.cash[i] }

// Inflation returns the CPI change for historical year index i.
func (s *Series) Inflation(i int) decimal.Decimal { return s.inflation[i] }

// StockReturns returns a copy of the full stock return history.
func (s *Series) StockReturns() []decimal.Decimal { return copyDecimals(s.stocks) }

// BondReturns returns a copy of the full bond return history.
func (s *Series) BondReturns() []decimal.Decimal { return copyDecimals(s.bonds) }

// CashReturns returns a copy of the full cash return history.
func (s *Series) CashReturns() []decimal.Decimal { return copyDecimals(s.cash) }

func copyDecimals(values []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	copy(out, values)
	return out
}

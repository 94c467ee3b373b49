// Package prediction analyses spoilage risk for inventory items. The
// probability of spoilage comes from a RiskEstimator, typically a model
// trained offline; the package combines it with simple storage-condition
// and shelf-life factors.
package prediction

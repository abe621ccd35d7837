// Package naam is the prediction core: request validation and
// normalization, the model lifecycle cache, and score decoding. The HTTP
// API and the CLI are thin layers over Cache.Predict.
package naam

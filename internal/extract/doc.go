// Package extract is the single-unit pipeline: lexical classification,
// annotation scanning, structural outline, attribute resolution and route
// composition. Scan is pure; units may be scanned concurrently.
package extract

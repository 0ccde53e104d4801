// Package assets defines how resources are identified, decoded and cached.
//
// A ResourceKey names a resource by extension, name and store. A Format
// turns raw bytes of one encoding into intermediate data, and a Kind turns
// that data into the finished asset, optionally caching it in a Cache held
// by its context. Reading bytes and deciding when to load or evict is left
// to the caller; Converter only strings the calls together.
package assets

package core

// Paginate returns the 1-based page of the given size from txs. Pages
// outside the sequence yield an empty slice, never an error.
func Paginate(txs []Transaction, page, size int) []Transaction {
	if page < 1 || size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(txs) {
		return nil
	}
	end := start + size
	if end > len(txs) {
		end = len(txs)
	}
	return txs[start:end]
}

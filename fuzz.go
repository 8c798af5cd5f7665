package dwg

// Fuzz is the entry point for a coverage-guided fuzzer (go-fuzz/libFuzzer
// style): feed it arbitrary bytes and it reports whether ReadFromStream
// completed without error.
func Fuzz(data []byte) int {
	doc, err := ReadFromStream(data, &Options{Failsafe: true})
	if err != nil {
		return 0
	}
	defer doc.Close()
	return 1
}

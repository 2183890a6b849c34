// Command trialqa is the clinical trial question-answering assistant:
// index trial data into a vector store, derive demo samples, chat over
// the index, and evaluate retrieval accuracy.
package main

import "os"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

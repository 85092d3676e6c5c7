package store_test

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ssargent/recstore/pkg/store"
)

// ExampleTextStore loads two names, removes the first and prints the rest
func ExampleTextStore() {
	dir, err := os.MkdirTemp("", "recstore_example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "names.txt")
	if err := os.WriteFile(path, []byte("Ada\nLin\n"), 0600); err != nil {
		log.Fatal(err)
	}

	names := store.NewTextStore(store.Options{})
	if err := names.LoadFromFile(path); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("count: %d, bytes: %d\n", names.Count(), names.Len())

	if err := names.RemoveAt(0); err != nil {
		log.Fatal(err)
	}
	if err := names.PrintAll(os.Stdout); err != nil {
		log.Fatal(err)
	}

	// Output:
	// count: 2, bytes: 8
	// Lin
}

// ExampleNumericStore_Quotient shows branching on the failure kind
func ExampleNumericStore_Quotient() {
	numbers := store.NewNumericStore(store.Options{})
	for _, v := range []int32{4, 0, 2} {
		if err := numbers.Append(v); err != nil {
			log.Fatal(err)
		}
	}

	_, err := numbers.Quotient()
	switch {
	case errors.Is(err, store.ErrDivisionByZero):
		fmt.Println("divisor is zero:", err)
	case errors.Is(err, store.ErrEmptyStore):
		fmt.Println("nothing to divide")
	}

	// Output:
	// divisor is zero: division: division by zero: divisor at index 1 is 0
}

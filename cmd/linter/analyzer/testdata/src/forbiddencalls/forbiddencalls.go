package forbiddencalls

import (
	"log"
	"os"
)

func SomePanicFunction() {
	panic("this is forbidden") // want "panic is forbidden"
}

func SomeLogFatalFunction() {
	log.Fatal("this is forbidden") // want "log.Fatal is forbidden outside main function"
}

func SomeLogFatalfFunction() {
	log.Fatalf("this is %s", "forbidden") // want "log.Fatalf is forbidden outside main function"
}

func SomeOsExitFunction() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}

func MultipleCallsFunction() {
	panic("panic 1")     // want "panic is forbidden"
	log.Fatalln("fatal") // want "log.Fatalln is forbidden outside main function"
	os.Exit(0)           // want "os.Exit is forbidden outside main function"
}

package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/DmitryKolesov/url-relay/cmd/linter/analyzer"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"go-career-scraper/internal/document"
	"go-career-scraper/internal/models"
	"go-career-scraper/internal/storage"
)

const previewLen = 100

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: display [file]\n\nPrints jobs saved by the scraper (default %s).\n", storage.DefaultFileName)
	}
	flag.Parse()

	path := storage.DefaultFileName
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	records, err := storage.Load(path)
	if err != nil {
		log.Fatalf("❌ Failed to read %s: %v", path, err)
	}
	if len(records) == 0 {
		fmt.Printf("No jobs in %s\n", path)
		return
	}
	printJobs(os.Stdout, records)
}

func printJobs(w io.Writer, records []models.JobRecord) {
	fmt.Fprintf(w, "Total jobs: %d\n", len(records))
	for i, r := range records {
		fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
		fmt.Fprintf(w, "JOB #%d\n", i+1)
		fmt.Fprintln(w, strings.Repeat("=", 60))
		fmt.Fprintf(w, "Company: %s\n", r.CompanyName)
		fmt.Fprintf(w, "Title: %s\n", r.JobTitle)
		fmt.Fprintf(w, "Location: %s\n", r.JobLocation)
		fmt.Fprintf(w, "Work Type: %s\n", r.WorkLocation)
		fmt.Fprintf(w, "Experience: %s\n", r.Experience)
		fmt.Fprintf(w, "Apply: %s\n", r.ApplyLink)
		fmt.Fprintf(w, "Description: %s\n", preview(r.JobDescription))
	}
}

// preview shortens s to previewLen characters, marking the cut.
func preview(s string) string {
	if document.Len(s) <= previewLen {
		return s
	}
	return document.Truncate(s, previewLen) + "..."
}

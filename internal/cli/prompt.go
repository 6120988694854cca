package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caldera-app/shipkit/internal/version"
)

func readLine() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// promptLineage asks which build lineage to operate on.
func promptLineage() (version.Build, error) {
	fmt.Println("\nBuild lineage:")
	fmt.Println("  1. Release")
	fmt.Println("  2. Debug")
	fmt.Print("Choose [1-2]: ")

	input, err := readLine()
	if err != nil {
		return version.Release, err
	}
	switch input {
	case "1":
		return version.Release, nil
	case "2":
		return version.Debug, nil
	default:
		fmt.Println("Invalid choice, please try again.")
		return promptLineage()
	}
}

// promptFragment asks for a major.minor version fragment. The patch is
// assigned automatically; entering one is rejected downstream.
func promptFragment() (version.Fragment, error) {
	fmt.Print("Version (major.minor, e.g. 1.4): ")
	input, err := readLine()
	if err != nil {
		return version.Fragment{}, err
	}
	fragment, err := version.Parse(input)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return promptFragment()
	}
	return fragment, nil
}

// promptNotes asks for free-text release notes.
func promptNotes() (string, error) {
	fmt.Print("Release notes (single line, optional): ")
	return readLine()
}

// promptVersionSelection lets the user pick a version from a listing.
func promptVersionSelection(list []version.AppVersion) (version.AppVersion, error) {
	if len(list) == 0 {
		return version.AppVersion{}, fmt.Errorf("no versions found")
	}

	fmt.Println("\nVersions (latest first):")
	for i, av := range list {
		fmt.Printf("  %d. %s (%s)\n", i+1, av.Version, av.Build)
	}
	fmt.Printf("Choose [1-%d]: ", len(list))

	input, err := readLine()
	if err != nil {
		return version.AppVersion{}, err
	}
	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > len(list) {
		fmt.Println("Invalid choice, please try again.")
		return promptVersionSelection(list)
	}
	return list[idx-1], nil
}

// confirm asks a yes/no question; only an explicit "y"/"yes" proceeds.
func confirm(question string) (bool, error) {
	fmt.Printf("%s [y/N]: ", question)
	input, err := readLine()
	if err != nil {
		return false, err
	}
	input = strings.ToLower(input)
	return input == "y" || input == "yes", nil
}

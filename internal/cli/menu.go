package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/caldera-app/shipkit/internal/hosting"
)

// runMenu is the interactive entry point: one operation per run, in
// keeping with the strictly sequential lifecycle.
func runMenu(ctx context.Context) error {
	fmt.Println("shipkit " + Version)
	fmt.Println()
	fmt.Println("  1. Build")
	fmt.Println("  2. Create Release")
	fmt.Println("  3. Delete Release")
	fmt.Println("  4. Delete Build")
	fmt.Println("  5. Quit")
	fmt.Print("Choose [1-5]: ")

	input, err := readLine()
	if err != nil {
		return err
	}

	switch input {
	case "1":
		return menuBuild(ctx)
	case "2":
		return menuPublish(ctx)
	case "3":
		return menuDeleteRelease(ctx)
	case "4":
		return menuDeleteBuild(ctx)
	case "5":
		return nil
	default:
		fmt.Println("Invalid choice, please try again.")
		return runMenu(ctx)
	}
}

func menuBuild(ctx context.Context) error {
	mgr, _, err := newManager()
	if err != nil {
		return err
	}

	lineage, err := promptLineage()
	if err != nil {
		return err
	}
	fragment, err := promptFragment()
	if err != nil {
		return err
	}

	av, err := mgr.Build(ctx, fragment, lineage)
	if err != nil {
		return err
	}
	fmt.Printf("\nBuilt %s (%s)\n", av.Version, av.Build)

	publish, err := confirm("Publish this build now?")
	if err != nil || !publish {
		return err
	}
	notes, err := promptNotes()
	if err != nil {
		return err
	}
	if _, err := mgr.Publish(ctx, av, notes); err != nil {
		return err
	}
	updateMeta, err := confirm("Update the auto-update metadata?")
	if err != nil || !updateMeta {
		return err
	}
	return mgr.UpdateMetadata(ctx, av, notes)
}

func menuPublish(ctx context.Context) error {
	mgr, _, err := newManager()
	if err != nil {
		return err
	}

	list, err := mgr.ListAllVersions()
	if err != nil {
		return err
	}
	av, err := promptVersionSelection(list)
	if err != nil {
		return err
	}
	notes, err := promptNotes()
	if err != nil {
		return err
	}

	if _, err := mgr.Publish(ctx, av, notes); err != nil {
		return err
	}
	fmt.Printf("\nPublished %s as %s\n", av.Version, av.Tag())

	updateMeta, err := confirm("Update the auto-update metadata?")
	if err != nil || !updateMeta {
		return err
	}
	return mgr.UpdateMetadata(ctx, av, notes)
}

func menuDeleteRelease(ctx context.Context) error {
	mgr, _, err := newManager()
	if err != nil {
		return err
	}

	list, err := mgr.ListAllVersions()
	if err != nil {
		return err
	}
	av, err := promptVersionSelection(list)
	if err != nil {
		return err
	}

	rel, err := mgr.FindRelease(ctx, av)
	if err != nil {
		if errors.Is(err, hosting.ErrReleaseNotFound) {
			fmt.Printf("No remote release exists for %s.\n", av.Tag())
			return nil
		}
		return err
	}

	ok, err := confirm(fmt.Sprintf("Delete remote release %s? This cannot be undone.", av.Tag()))
	if err != nil || !ok {
		return err
	}
	return mgr.DeleteRelease(ctx, rel.ID, av.Tag())
}

func menuDeleteBuild(ctx context.Context) error {
	mgr, _, err := newManager()
	if err != nil {
		return err
	}

	list, err := mgr.ListAllVersions()
	if err != nil {
		return err
	}
	av, err := promptVersionSelection(list)
	if err != nil {
		return err
	}

	ok, err := confirm(fmt.Sprintf("Delete local build folder %s? This cannot be undone.", av.Folder()))
	if err != nil || !ok {
		return err
	}
	return mgr.DeleteLocalVersion(av)
}

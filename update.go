package net64update

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/net64plus/net64update/update"
)

// Download fetches the asset selected by a successful check.
func (up *Updater) Download(ctx context.Context, result UpdateResult, progress ProgressFunc) ([]byte, error) {
	if !result.Found() {
		return nil, fmt.Errorf("%w: no update to download (%s)", ErrAssetNotFound, result.Status)
	}
	return up.downloader.Download(ctx, result.URL, progress)
}

// DownloadAndValidate fetches the asset selected by a successful check and, when the updater
// has a validator, checks it against its validation file.
func (up *Updater) DownloadAndValidate(ctx context.Context, result UpdateResult, progress ProgressFunc) ([]byte, error) {
	data, err := up.Download(ctx, result, progress)
	if err != nil {
		return nil, err
	}
	if up.validator == nil {
		return data, nil
	}
	if result.ValidationURL == "" {
		return nil, fmt.Errorf("%w: %q", ErrValidationAssetNotFound, up.validator.GetValidationAssetName(result.AssetName))
	}

	validationData, err := up.downloader.Download(ctx, result.ValidationURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed reading validation asset body: %w", err)
	}
	if err := up.validator.Validate(result.AssetName, data, validationData); err != nil {
		return nil, fmt.Errorf("failed validating asset content: %w", err)
	}
	log.Printf("Asset %s validated against %s", result.AssetName, result.ValidationAssetName)
	return data, nil
}

// InstallTo downloads the asset of a successful check, extracts the executable named after cmdPath
// and atomically replaces cmdPath with it. The launcher uses it to install the companion server.
// cmdPath does not need to exist yet.
func (up *Updater) InstallTo(ctx context.Context, result UpdateResult, cmdPath string, progress ProgressFunc) error {
	if runtime.GOOS == "windows" && !strings.HasSuffix(cmdPath, ".exe") {
		// Ensure to add '.exe' to given path on Windows
		cmdPath = cmdPath + ".exe"
	}
	data, err := up.DownloadAndValidate(ctx, result, progress)
	if err != nil {
		return err
	}
	return up.decompressAndUpdate(data, result.AssetName, cmdPath)
}

func (up *Updater) decompressAndUpdate(data []byte, assetName, cmdPath string) error {
	_, cmd := filepath.Split(cmdPath)
	cmd = strings.TrimSuffix(cmd, ".exe")
	asset, err := DecompressCommand(bytes.NewReader(data), assetName, cmd, up.matcher.Platform)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cmdPath), 0o755); err != nil {
		return err
	}
	log.Printf("Will update %s to the version downloaded as %s", cmdPath, assetName)
	return update.Apply(asset, update.Options{
		TargetPath: cmdPath,
	})
}

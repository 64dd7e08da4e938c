package azure

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/storage/armstorage"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"

	"github.com/dp-tools/privacy-atlas/pkg/services/scan"
)

// StorageExplorer implements scan.StorageExplorer against Azure Storage:
// account enumeration through the resource manager, container/blob
// listing and metadata through the blob service.
type StorageExplorer struct {
	accounts *armstorage.AccountsClient
	cred     azcore.TokenCredential

	mu          sync.Mutex
	blobClients map[string]*azblob.Client
	endpoints   map[string]string
}

func NewStorageExplorer(subscriptionID string, cred azcore.TokenCredential) (*StorageExplorer, error) {
	accounts, err := armstorage.NewAccountsClient(subscriptionID, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage accounts client: %w", err)
	}
	return &StorageExplorer{
		accounts:    accounts,
		cred:        cred,
		blobClients: make(map[string]*azblob.Client),
		endpoints:   make(map[string]string),
	}, nil
}

func (e *StorageExplorer) ListAccounts(ctx context.Context, resourceGroup string) ([]scan.Account, error) {
	var out []scan.Account

	collect := func(items []*armstorage.Account) {
		for _, item := range items {
			if item == nil || item.Name == nil {
				continue
			}
			account := scan.Account{
				Name:          *item.Name,
				ResourceGroup: resourceGroupFromID(deref(item.ID)),
			}
			if item.Properties != nil && item.Properties.PrimaryEndpoints != nil {
				e.rememberEndpoint(account.Name, deref(item.Properties.PrimaryEndpoints.Blob))
			}
			out = append(out, account)
		}
	}

	if resourceGroup != "" {
		pager := e.accounts.NewListByResourceGroupPager(resourceGroup, nil)
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return nil, fmt.Errorf("failed to list storage accounts in %s: %w", resourceGroup, err)
			}
			collect(page.Value)
		}
		return out, nil
	}

	pager := e.accounts.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list storage accounts: %w", err)
		}
		collect(page.Value)
	}
	return out, nil
}

func (e *StorageExplorer) ListContainers(ctx context.Context, account scan.Account) ([]scan.Container, error) {
	client, err := e.blobClient(account.Name)
	if err != nil {
		return nil, err
	}

	var out []scan.Container
	pager := client.NewListContainersPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list containers for %s: %w", account.Name, err)
		}
		for _, item := range page.ContainerItems {
			if item == nil || item.Name == nil {
				continue
			}
			out = append(out, scan.Container{Account: account, Name: *item.Name})
		}
	}
	return out, nil
}

func (e *StorageExplorer) ListObjects(ctx context.Context, c scan.Container) ([]scan.Object, error) {
	client, err := e.blobClient(c.Account.Name)
	if err != nil {
		return nil, err
	}

	var out []scan.Object
	pager := client.NewListBlobsFlatPager(c.Name, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs in %s/%s: %w", c.Account.Name, c.Name, err)
		}
		for _, item := range page.Segment.BlobItems {
			if item == nil || item.Name == nil {
				continue
			}
			out = append(out, scan.Object{Container: c, Name: *item.Name})
		}
	}
	return out, nil
}

func (e *StorageExplorer) GetMetadata(ctx context.Context, object scan.Object) (map[string]string, error) {
	client, err := e.blobClient(object.Container.Account.Name)
	if err != nil {
		return nil, err
	}

	blobClient := client.ServiceClient().
		NewContainerClient(object.Container.Name).
		NewBlobClient(object.Name)

	props, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get properties for %s: %w", object.Location(), err)
	}

	metadata := make(map[string]string, len(props.Metadata))
	for key, value := range props.Metadata {
		metadata[key] = deref(value)
	}
	return metadata, nil
}

func (e *StorageExplorer) ReadContent(ctx context.Context, object scan.Object, limit int64) (string, error) {
	client, err := e.blobClient(object.Container.Account.Name)
	if err != nil {
		return "", err
	}

	resp, err := client.DownloadStream(ctx, object.Container.Name, object.Name, &azblob.DownloadStreamOptions{
		Range: azblob.HTTPRange{Offset: 0, Count: limit},
	})
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", object.Location(), err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", object.Location(), err)
	}
	return string(data), nil
}

func (e *StorageExplorer) blobClient(account string) (*azblob.Client, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if client, ok := e.blobClients[account]; ok {
		return client, nil
	}

	endpoint := e.endpoints[account]
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.blob.core.windows.net/", account)
	}

	client, err := azblob.NewClient(endpoint, e.cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client for %s: %w", account, err)
	}
	e.blobClients[account] = client
	return client, nil
}

func (e *StorageExplorer) rememberEndpoint(account, endpoint string) {
	if endpoint == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.endpoints[account] = endpoint
}

// resourceGroupFromID extracts the resource group segment from an ARM
// resource ID such as /subscriptions/x/resourceGroups/rg/providers/...
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

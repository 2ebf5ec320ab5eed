package gdrive

import (
	"context"
	"encoding/json"
	"fmt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"io"
	"io/ioutil"
	"log"
	"os"
)

// OAuth returns a read only Google Drive service for NewStream.
// The token file is created with user interaction (stdin) if it does not exist.
func OAuth(clientCredFile, tokenFile string) (*drive.Service, error) {
	// ConfigFromJSON uses a Google Developers Console client_credentials.json file to construct a config.
	// client_credentials.json can be downloaded from https://console.developers.google.com, under "Credentials".
	oAuthConf, err := loadOAuthConf(clientCredFile, drive.DriveReadonlyScope)
	if err != nil {
		log.Printf("ERROR: %s/OAuth: %v", packageName, err)
		log.Printf("ERROR: %s/OAuth: This link could help: https://www.google.com/search?q=drive+client+credential", packageName)
		return nil, err
	}

	// The token represents the credentials used to authorize the requests
	tok, err := loadToken(tokenFile)
	if err != nil {
		log.Printf("WARNING: %s/OAuth: %v", packageName, err)

		// get token with user interaction
		tok, err = reqNewToken(tokenFile, oAuthConf, os.Stdin)
		if err != nil {
			return nil, err
		}
	}

	// new drive service with OAuth2
	ctx := context.Background()
	service, err := drive.NewService(ctx, option.WithTokenSource(oAuthConf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("gdrive/OAuth: %w", err)
	}

	return service, nil
}

//--------  HELPER  --------------------------------------------------------------------------------------------------//

// loadOAuthConf loads a valid OAuth config from a file
func loadOAuthConf(file, scope string) (*oauth2.Config, error) {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("gdrive/loadOAuthConf: %w", err)
	}

	oAuthConf, err := google.ConfigFromJSON(b, scope)
	if err != nil {
		return nil, fmt.Errorf("gdrive/loadOAuthConf: %w", err)
	}
	return oAuthConf, nil
}

// loadToken loads a valid token from a file
func loadToken(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("gdrive/loadToken: %w", err)
	}
	defer f.Close()

	tok := new(oauth2.Token)
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("gdrive/loadToken: %w", err)
	}
	return tok, nil
}

// reqNewToken asks the user for an authorization code (read from in).
// If successful, the valid token is written to a file and returned.
func reqNewToken(file string, oAuthConf *oauth2.Config, in io.Reader) (*oauth2.Token, error) {
	var authCode string
	authURL := oAuthConf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("\nFollow the link and create a new token file: %v\n\nEnter the authorization code here: ", authURL)
	if _, err := fmt.Fscan(in, &authCode); err != nil {
		return nil, fmt.Errorf("gdrive/reqNewToken: no authorization code: %w", err)
	}

	// convert authorization code to token
	tok, err := oAuthConf.Exchange(context.TODO(), authCode)
	if err != nil {
		return nil, fmt.Errorf("gdrive/reqNewToken: %w", err)
	}

	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) // override file
	if err != nil {
		return nil, fmt.Errorf("gdrive/reqNewToken: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return nil, fmt.Errorf("gdrive/reqNewToken: %w", err)
	}
	return tok, nil
}

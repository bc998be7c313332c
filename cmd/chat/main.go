package main

import (
	"bufio"         // Reading prompts from stdin
	"bytes"         // Request body buffers
	"encoding/json" // Request body encoding
	"flag"          // Command-line flags
	"fmt"           // Terminal output
	"net/http"      // HTTP client
	"net/http/cookiejar" // Session cookie storage
	"os"            // Stdin and exit codes

	"paydash/internal/llm"    // Message type shared with the server
	"paydash/internal/stream" // Stream consumer and canned messages
)

// chatRequest mirrors the server's chat relay request body.
type chatRequest struct {
	Message string        `json:"message"` // New user message
	History []llm.Message `json:"history"` // Prior conversation
}

// login posts the demo credentials; the session cookies land in the jar.
func login(client *http.Client, baseURL, username, password string) error {
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := client.Post(baseURL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return err // Server unreachable
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
	return nil
}

// ask sends one message plus history and prints the reply as it streams in.
// It returns the full reply text for the history.
func ask(client *http.Client, baseURL, message string, history []llm.Message) (string, error) {
	body, _ := json.Marshal(chatRequest{Message: message, History: history})
	resp, err := client.Post(baseURL+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err // Network failure before any frame arrived
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request failed with status %d", resp.StatusCode)
	}
	printed := 0 // Length of the text already printed
	reply, err := stream.Consume(resp.Body, func(acc string) {
		fmt.Print(acc[printed:]) // Print only the newly arrived fragment
		printed = len(acc)
	})
	fmt.Println()
	return reply, err
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Dashboard server base URL")
	username := flag.String("user", "pypl", "Demo account username")
	password := flag.String("pass", "pypl", "Demo account password")
	flag.Parse()

	jar, _ := cookiejar.New(nil)         // Holds the plain session cookies
	client := &http.Client{Jar: jar}     // Shared client for login and chat
	if err := login(client, *baseURL, *username, *password); err != nil {
		fmt.Fprintln(os.Stderr, "login:", err)
		os.Exit(1)
	}
	fmt.Printf("Logged in as %s. Ask the assistant something (Ctrl-D to quit).\n", *username)

	var history []llm.Message // Conversation carried across turns
	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !in.Scan() {
			break // End of input
		}
		message := in.Text()
		if message == "" {
			continue // Skip empty lines
		}
		reply, err := ask(client, *baseURL, message, history)
		if err != nil {
			// Raw errors never reach the user, only canned messages do
			fmt.Println(stream.CannedMessage(err))
			continue
		}
		// Keep the exchange so follow-up questions have context
		history = append(history,
			llm.Message{Role: "user", Content: message},
			llm.Message{Role: "assistant", Content: reply})
	}
}

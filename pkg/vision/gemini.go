package vision

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/waypath/go-waypath/internal/httpc"
)

// descriptionPrompt asks for output that reads well when spoken aloud to a
// walking user: short, spatial, no markup.
const descriptionPrompt = "Describe this scene for a blind pedestrian in two or three short sentences. " +
	"Mention obstacles, people, and open walking space, with their rough position (left, ahead, right). " +
	"Plain sentences only, no lists or formatting."

// Gemini describes scenes through the Gemini Flash API.
type Gemini struct {
	apiKey string
	model  string
}

// NewGemini creates a Gemini-backed describer.
func NewGemini(apiKey string) *Gemini {
	return &Gemini{apiKey: apiKey, model: "gemini-2.0-flash"}
}

// Describe sends the JPEG frame to Gemini and returns the description.
func (g *Gemini) Describe(jpeg []byte) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GOOGLE_API_KEY not set")
	}

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": descriptionPrompt},
					{"inline_data": map[string]string{
						"mime_type": "image/jpeg",
						"data":      base64.StdEncoding.EncodeToString(jpeg),
					}},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":     0.4,
			"maxOutputTokens": 200,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s",
		g.model, g.apiKey)
	req, err := http.NewRequest("POST", url, bytes.NewReader(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return "", fmt.Errorf("Gemini API error (status %d): %s", resp.StatusCode, truncate(string(bodyBytes), 200))
	}

	var result geminiResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("Gemini error: %s", result.Error.Message)
	}
	if len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
		return result.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("no response from Gemini")
}

// geminiResponse is the response structure from the Gemini API.
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// truncate shortens a string to maxLen characters.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}

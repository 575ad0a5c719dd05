package controllers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"os"
	"time"

	"legal-shield/configuration"
	"legal-shield/models"

	"github.com/gin-gonic/gin"
)

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// Marketing pages always present in the sitemap.
var staticPages = []struct {
	Path       string
	ChangeFreq string
	Priority   string
}{
	{"/", "weekly", "1.0"},
	{"/attorneys", "daily", "0.9"},
	{"/emergency-consultation", "weekly", "0.9"},
	{"/case-analysis", "weekly", "0.7"},
	{"/challenges", "weekly", "0.5"},
	{"/subscription/plans", "monthly", "0.6"},
}

func siteBaseURL() string {
	if base := os.Getenv("SITE_BASE_URL"); base != "" {
		return base
	}
	return "https://www.legalshield.example.com"
}

// GetSitemap renders sitemap.xml from the static pages and the verified
// attorney profiles.
func GetSitemap(c *gin.Context) {
	base := siteBaseURL()
	today := time.Now().Format("2006-01-02")

	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, page := range staticPages {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        base + page.Path,
			LastMod:    today,
			ChangeFreq: page.ChangeFreq,
			Priority:   page.Priority,
		})
	}

	var attorneys []models.Attorney
	if err := configuration.DB.Where("is_active = ? AND verified = ?", true, "true").
		Find(&attorneys).Error; err == nil {
		for _, attorney := range attorneys {
			set.URLs = append(set.URLs, sitemapURL{
				Loc:        fmt.Sprintf("%s/attorneys/%d", base, attorney.AttorneyID),
				ChangeFreq: "weekly",
				Priority:   "0.8",
			})
		}
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to render sitemap")
		return
	}
	c.Data(http.StatusOK, "application/xml", append([]byte(xml.Header), out...))
}

// GetRobots renders robots.txt.
func GetRobots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nAllow: /\nSitemap: %s/sitemap.xml\n", siteBaseURL())
}

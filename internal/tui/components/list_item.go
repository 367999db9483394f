package components

import (
	"fmt"
	"strconv"

	"github.com/mmcdole/noor/internal/domain"
)

// ListItem is anything a ListColumn can display and filter
type ListItem interface {
	// ItemID returns a stable identifier for the item
	ItemID() string

	// ItemTitle returns the display title
	ItemTitle() string

	// ItemSubtitle returns secondary text shown dimmed after the title
	ItemSubtitle() string

	// FilterValue returns the string used for fuzzy filtering
	FilterValue() string
}

// SurahItem wraps domain.Surah
type SurahItem struct {
	Surah domain.Surah
}

func (i SurahItem) ItemID() string       { return strconv.Itoa(i.Surah.Number) }
func (i SurahItem) ItemTitle() string    { return i.Surah.DisplayTitle() }
func (i SurahItem) ItemSubtitle() string { return i.Surah.Name }
func (i SurahItem) FilterValue() string {
	return fmt.Sprintf("%d %s %s", i.Surah.Number, i.Surah.EnglishName, i.Surah.EnglishNameTranslation)
}

// CollectionItem wraps domain.HadithCollection
type CollectionItem struct {
	Collection domain.HadithCollection
}

func (i CollectionItem) ItemID() string    { return i.Collection.ID }
func (i CollectionItem) ItemTitle() string { return i.Collection.Name }
func (i CollectionItem) ItemSubtitle() string {
	if i.Collection.Count == 0 {
		return i.Collection.ID
	}
	return fmt.Sprintf("%s · %d", i.Collection.ID, i.Collection.Count)
}
func (i CollectionItem) FilterValue() string { return i.Collection.ID + " " + i.Collection.Name }

// HadithItem wraps domain.Hadith
type HadithItem struct {
	Hadith domain.Hadith
}

func (i HadithItem) ItemID() string       { return i.Hadith.ID }
func (i HadithItem) ItemTitle() string    { return i.Hadith.Title }
func (i HadithItem) ItemSubtitle() string { return i.Hadith.Reference }
func (i HadithItem) FilterValue() string  { return strconv.Itoa(i.Hadith.Number) + " " + i.Hadith.Title }

// ReciterItem wraps domain.Reciter
type ReciterItem struct {
	Reciter domain.Reciter
}

func (i ReciterItem) ItemID() string       { return i.Reciter.ID }
func (i ReciterItem) ItemTitle() string    { return i.Reciter.Name }
func (i ReciterItem) ItemSubtitle() string { return i.Reciter.Style }
func (i ReciterItem) FilterValue() string  { return i.Reciter.Name }

// SurahItems converts surahs to list items
func SurahItems(surahs []domain.Surah) []ListItem {
	items := make([]ListItem, len(surahs))
	for i, s := range surahs {
		items[i] = SurahItem{Surah: s}
	}
	return items
}

// CollectionItems converts hadith collections to list items
func CollectionItems(collections []domain.HadithCollection) []ListItem {
	items := make([]ListItem, len(collections))
	for i, c := range collections {
		items[i] = CollectionItem{Collection: c}
	}
	return items
}

// HadithItems converts hadiths to list items
func HadithItems(hadiths []domain.Hadith) []ListItem {
	items := make([]ListItem, len(hadiths))
	for i, h := range hadiths {
		items[i] = HadithItem{Hadith: h}
	}
	return items
}

// ReciterItems converts reciters to list items
func ReciterItems(reciters []domain.Reciter) []ListItem {
	items := make([]ListItem, len(reciters))
	for i, r := range reciters {
		items[i] = ReciterItem{Reciter: r}
	}
	return items
}

package constant

const (
	// Assistant persona. Answers are always in Bahasa Indonesia.
	TajwidPersonaPromptV1 = `Anda adalah Asisten Ustadz dalam Ilmu Tajwid Al-Qur'an dari Markaz Qur'an Darussalam.
Tugas Anda: menjawab pertanyaan tentang hukum bacaan, makharijul huruf, sifat huruf, dan kaidah tajwid, mengoreksi bacaan yang diperdengarkan, serta menjelaskan teks tajwid dari gambar.
Jawab dengan sopan, dengan Bahasa Indonesia yang baik dan sapaan yang santun. Gunakan **bold** untuk penekanan istilah penting.`

	TajwidKnowledgeRulesPromptV1 = `ATURAN SUMBER PENGETAHUAN:
1. Utamakan informasi dari blok <knowledge_base>. Jangan mengarang hukum tajwid sendiri.
2. Jika materi memiliki SOURCE selain "not specified", sebutkan kitab atau rujukannya secara alami.
3. Jika jawaban tidak ada di <knowledge_base>, katakan: "Maaf, ilmu mengenai hal tersebut belum tersedia di database kami."
4. Gunakan <conversation_history> hanya untuk memahami konteks percakapan.
5. JANGAN PERNAH menyebut ID materi, nama blok, atau frasa seperti "berdasarkan data yang diberikan", "menurut konteks", "based on the provided data" di dalam jawaban. Jawab seolah-olah ilmu itu milik Anda sendiri.`

	TajwidDirectiveRulesPromptV1 = `ATURAN TAG KHUSUS:
1. Jika sebuah materi bertanda [audio available, id=<ID>] dan pengguna meminta contoh bacaan, tulis tag [[AUDIO:<ID>]] di bagian yang relevan. Tulis ID persis seperti di materi, tanpa tanda baca tambahan.
2. JANGAN PERNAH menulis tag [[AUDIO:...]] untuk materi bertanda [no audio].
3. Untuk memperdengarkan ayat Al-Qur'an, tulis [[RECITE:<nomor surat>:<nomor ayat>]], contoh [[RECITE:1:1]] untuk Al-Fatihah ayat 1.
4. Jika pengguna ingin belajar lebih lanjut dengan guru atau bertanya tentang kelas, tulis [[DAFTAR_KELAS]].
5. Jangan menulis tag lain selain ketiga tag di atas.`

	// Fixed user instructions used when the prompt text is empty.
	CritiqueRecitationInstruction = "critique this recitation for articulation, elongation, and nasalization accuracy."
	ExplainImageInstruction       = "explain the recitation rule shown in this image."

	TranscribeImagePromptV1  = `Transkripsikan seluruh teks yang ada pada gambar ini apa adanya, termasuk teks Arab dan penjelasannya. Jangan menambahkan komentar.`
	TranscribedContentPrefix = "[Dari Gambar]: "

	ChatGreetingV1      = "Assalamu’alaikum. Saya Asisten Tajwid dari Markaz Qur'an Darussalam. Silakan tanyakan hukum bacaan, makharijul huruf, atau minta contoh bacaan."
	ChatFailureReplyV1  = "Maaf, koneksi ke layanan AI terganggu. Silakan kirim ulang pertanyaan Anda."
	ChatEncodingReplyV1 = "Maaf, berkas yang Anda kirim tidak dapat diproses."

	AdminAudioLabel        = "Contoh Bacaan (dari Admin)"
	AudioUnavailableNotice = "(Audio untuk materi ini belum tersedia)"
	RecitationLabel        = "Murattal"
	RegistrationDisclaimer = "Belajar tajwid paling baik langsung dengan guru (talaqqi). Daftarkan diri Anda di kelas Markaz Qur'an Darussalam."
	RegistrationAction     = "Daftar Kelas"

	DefaultReciterBaseURL = "https://everyayah.com/data/Alafasy_128kbps"
)

// Categories is the fixed tajwid category catalogue.
var Categories = []string{
	"Hukum Nun Mati & Tanwin",
	"Hukum Mim Mati",
	"Hukum Mad",
	"Hukum Idgham",
	"Qalqalah",
	"Makharijul Huruf",
	"Sifat Huruf",
	"Waqaf & Ibtida",
	"Lainnya",
}

// LeakPhrases must never appear in a visible answer.
var LeakPhrases = []string{
	"based on the provided data",
	"based on the provided context",
	"berdasarkan data yang diberikan",
	"berdasarkan konteks",
	"menurut konteks",
	"knowledge_base",
	"[audio available",
	"[no audio]",
}

// KnowledgeAudioPathFormat is where a record's clip is served.
const KnowledgeAudioPathFormat = "/api/knowledge/v1/%s/audio"

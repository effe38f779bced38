package qscript

// Version family masks.
const (
	fV1 = Flags(1)<<DCNTE | 1<<DC112000 | 1<<DCV1
	fV2 = Flags(1)<<DCV2 | 1<<PCNTE | 1<<PCV2 | 1<<GCNTE
	fV3 = Flags(1)<<GCV3 | 1<<GCEp3NTE | 1<<GCEp3 | 1<<XBV3
	fV4 = Flags(1) << BBV4

	v12 = fV1 | fV2
	v14 = fV1 | fV2 | fV3 | fV4
	v2  = fV2
	v23 = fV2 | fV3
	v24 = fV2 | fV3 | fV4
	v3  = fV3
	v34 = fV3 | fV4
	v4  = fV4

	fArgs    = FlagArgs
	fPass    = FlagPreserve
	fRet     = FlagReturn
	fEpisode = FlagEpisode
)

type args = []Arg

var (
	label16     = Arg{Kind: Label16}
	script16    = Arg{Kind: Label16, Role: RoleCode}
	script16Set = Arg{Kind: Label16Set, Role: RoleCode}
	script32    = Arg{Kind: Label32, Role: RoleCode}
	str16       = Arg{Kind: Label16, Role: RoleString}
	stats16     = Arg{Kind: Label16, Role: RolePlayerStats, Name: "stats"}
	visual16    = Arg{Kind: Label16, Role: RoleVisualConfig, Name: "visual_config"}
	resist16    = Arg{Kind: Label16, Role: RoleResistData, Name: "resist_data"}
	attack16    = Arg{Kind: Label16, Role: RoleAttackData, Name: "attack_data"}
	movement16  = Arg{Kind: Label16, Role: RoleMovementData, Name: "movement_data"}
	image16     = Arg{Kind: Label16, Role: RoleImage, Name: "image_data"}
	f8f2Data16  = Arg{Kind: Label16, Role: RoleF8F2}

	reg    = Arg{Kind: Reg}
	regSet = Arg{Kind: RegSet}
	reg32  = Arg{Kind: Reg32}
	i8     = Arg{Kind: Int8}
	i16    = Arg{Kind: Int16}
	i32    = Arg{Kind: Int32}
	f32    = Arg{Kind: Float32}
	cstr   = Arg{Kind: CString}

	clientID = Arg{Kind: Int32, Name: "client_id"}
	itemID   = Arg{Kind: Int32, Name: "item_id"}
	area     = Arg{Kind: Int32, Name: "area"}
)

func regs(n int) Arg   { return Arg{Kind: RegSetFixed, Count: n} }
func regs32(n int) Arg { return Arg{Kind: Reg32SetFixed, Count: n} }

// opcodeDefs is the single source of truth for every version's instruction
// set. Entries sharing a code must have disjoint version masks.
var opcodeDefs = []OpcodeDef{
	{0x0000, "nop", nil, v14},
	{0x0001, "ret", nil, v14 | fRet},
	{0x0002, "sync", nil, v14},
	{0x0003, "exit", args{i32}, v14},
	{0x0004, "thread", args{script16}, v14},
	{0x0005, "va_start", nil, v34},
	{0x0006, "va_end", nil, v34},
	{0x0007, "va_call", args{script16}, v34},
	{0x0008, "let", args{reg, reg}, v14},
	{0x0009, "leti", args{reg, i32}, v14},
	{0x000A, "leta", args{reg, reg}, v12},
	{0x000A, "letb", args{reg, i8}, v34},
	{0x000B, "letw", args{reg, i16}, v34},
	{0x000C, "leta", args{reg, reg}, v34},
	{0x000D, "leto", args{reg, script16}, v34},
	{0x0010, "set", args{reg}, v14},
	{0x0011, "clear", args{reg}, v14},
	{0x0012, "rev", args{reg}, v14},
	{0x0013, "gset", args{i16}, v14},
	{0x0014, "gclear", args{i16}, v14},
	{0x0015, "grev", args{i16}, v14},
	{0x0016, "glet", args{i16, reg}, v14},
	{0x0017, "gget", args{i16, reg}, v14},
	{0x0018, "add", args{reg, reg}, v14},
	{0x0019, "addi", args{reg, i32}, v14},
	{0x001A, "sub", args{reg, reg}, v14},
	{0x001B, "subi", args{reg, i32}, v14},
	{0x001C, "mul", args{reg, reg}, v14},
	{0x001D, "muli", args{reg, i32}, v14},
	{0x001E, "div", args{reg, reg}, v14},
	{0x001F, "divi", args{reg, i32}, v14},
	{0x0020, "and", args{reg, reg}, v14},
	{0x0021, "andi", args{reg, i32}, v14},
	{0x0022, "or", args{reg, reg}, v14},
	{0x0023, "ori", args{reg, i32}, v14},
	{0x0024, "xor", args{reg, reg}, v14},
	{0x0025, "xori", args{reg, i32}, v14},
	{0x0026, "mod", args{reg, reg}, v34},
	{0x0027, "modi", args{reg, i32}, v34},
	{0x0028, "jmp", args{script16}, v14 | fRet},
	{0x0029, "call", args{script16}, v14},
	{0x002A, "jmp_on", args{script16, regSet}, v14},
	{0x002B, "jmp_off", args{script16, regSet}, v14},
	{0x002C, "jmp_eq", args{reg, reg, script16}, v14},
	{0x002D, "jmpi_eq", args{reg, i32, script16}, v14},
	{0x002E, "jmp_ne", args{reg, reg, script16}, v14},
	{0x002F, "jmpi_ne", args{reg, i32, script16}, v14},
	{0x0030, "ujmp_gt", args{reg, reg, script16}, v14},
	{0x0031, "ujmpi_gt", args{reg, i32, script16}, v14},
	{0x0032, "jmp_gt", args{reg, reg, script16}, v14},
	{0x0033, "jmpi_gt", args{reg, i32, script16}, v14},
	{0x0034, "ujmp_lt", args{reg, reg, script16}, v14},
	{0x0035, "ujmpi_lt", args{reg, i32, script16}, v14},
	{0x0036, "jmp_lt", args{reg, reg, script16}, v14},
	{0x0037, "jmpi_lt", args{reg, i32, script16}, v14},
	{0x0038, "ujmp_ge", args{reg, reg, script16}, v14},
	{0x0039, "ujmpi_ge", args{reg, i32, script16}, v14},
	{0x003A, "jmp_ge", args{reg, reg, script16}, v14},
	{0x003B, "jmpi_ge", args{reg, i32, script16}, v14},
	{0x003C, "ujmp_le", args{reg, reg, script16}, v14},
	{0x003D, "ujmpi_le", args{reg, i32, script16}, v14},
	{0x003E, "jmp_le", args{reg, reg, script16}, v14},
	{0x003F, "jmpi_le", args{reg, i32, script16}, v14},
	{0x0040, "switch_jmp", args{reg, script16Set}, v14 | fRet},
	{0x0041, "switch_call", args{reg, script16Set}, v14},
	{0x0042, "nop_42", args{i32}, v12},
	{0x0042, "stack_push", args{reg}, v34},
	{0x0043, "stack_pop", args{reg}, v34},
	{0x0044, "stack_pushm", args{reg, i32}, v34},
	{0x0045, "stack_popm", args{reg, i32}, v34},
	{0x0048, "arg_pushr", args{reg}, v34 | fPass},
	{0x0049, "arg_pushl", args{i32}, v34 | fPass},
	{0x004A, "arg_pushb", args{i8}, v34 | fPass},
	{0x004B, "arg_pushw", args{i16}, v34 | fPass},
	{0x004C, "arg_pusha", args{reg}, v34 | fPass},
	{0x004D, "arg_pusho", args{label16}, v34 | fPass},
	{0x004E, "arg_pushs", args{cstr}, v34 | fPass},
	{0x0050, "message", args{i32, cstr}, v12},
	{0x0050, "message", args{i32, cstr}, v34 | fArgs},
	{0x0051, "list", args{reg, cstr}, v12},
	{0x0051, "list", args{reg, cstr}, v34 | fArgs},
	{0x0052, "fadein", nil, v14},
	{0x0053, "fadeout", nil, v14},
	{0x0054, "se", args{i32}, v12},
	{0x0054, "se", args{i32}, v34 | fArgs},
	{0x0055, "bgm", args{i32}, v12},
	{0x0055, "bgm", args{i32}, v34 | fArgs},
	{0x0056, "nop_56", nil, v12},
	{0x0057, "nop_57", nil, v12},
	{0x0058, "nop_58", args{i32}, v12},
	{0x0059, "nop_59", args{i32}, v12},
	{0x005A, "window_msg", args{cstr}, v12},
	{0x005A, "window_msg", args{cstr}, v34 | fArgs},
	{0x005B, "add_msg", args{cstr}, v12},
	{0x005B, "add_msg", args{cstr}, v34 | fArgs},
	{0x005C, "mesend", nil, v14},
	{0x005D, "gettime", args{reg}, v14},
	{0x005E, "winend", nil, v14},
	{0x0060, "npc_crt", args{i32, i32}, v12},
	{0x0060, "npc_crt", args{i32, i32}, v34 | fArgs},
	{0x0061, "npc_stop", args{i32}, v12},
	{0x0061, "npc_stop", args{i32}, v34 | fArgs},
	{0x0062, "npc_play", args{i32}, v12},
	{0x0062, "npc_play", args{i32}, v34 | fArgs},
	{0x0063, "npc_kill", args{i32}, v12},
	{0x0063, "npc_kill", args{i32}, v34 | fArgs},
	{0x0064, "npc_nont", nil, v14},
	{0x0065, "npc_talk", nil, v14},
	{0x0066, "npc_crp", args{regs(6), i32}, v12},
	{0x0066, "npc_crp", args{regs(6)}, v34},
	{0x0068, "create_pipe", args{i32}, v12},
	{0x0068, "create_pipe", args{i32}, v34 | fArgs},
	{0x0069, "p_hpstat", args{reg, clientID}, v12},
	{0x0069, "p_hpstat", args{reg, clientID}, v34 | fArgs},
	{0x006A, "p_dead", args{reg, clientID}, v12},
	{0x006A, "p_dead", args{reg, clientID}, v34 | fArgs},
	{0x006B, "p_disablewarp", nil, v14},
	{0x006C, "p_enablewarp", nil, v14},
	{0x006D, "p_move", args{regs(5), i32}, v12},
	{0x006D, "p_move", args{regs(5)}, v34},
	{0x006E, "p_look", args{clientID}, v12},
	{0x006E, "p_look", args{clientID}, v34 | fArgs},
	{0x0070, "p_action_disable", nil, v14},
	{0x0071, "p_action_enable", nil, v14},
	{0x0072, "disable_movement1", args{clientID}, v12},
	{0x0072, "disable_movement1", args{clientID}, v34 | fArgs},
	{0x0073, "enable_movement1", args{clientID}, v12},
	{0x0073, "enable_movement1", args{clientID}, v34 | fArgs},
	{0x0074, "p_noncol", nil, v14},
	{0x0075, "p_col", nil, v14},
	{0x0076, "p_setpos", args{clientID, regs(4)}, v12},
	{0x0076, "p_setpos", args{clientID, regs(4)}, v34 | fArgs},
	{0x0077, "p_return_guild", nil, v14},
	{0x0078, "p_talk_guild", args{clientID}, v12},
	{0x0078, "p_talk_guild", args{clientID}, v34 | fArgs},
	{0x0079, "npc_talk_pl", args{regs32(8)}, v12},
	{0x0079, "npc_talk_pl", args{regs(8)}, v34},
	{0x007A, "npc_talk_kill", args{i32}, v12},
	{0x007A, "npc_talk_kill", args{i32}, v34 | fArgs},
	{0x007B, "npc_crtpk", args{i32, i32}, v12},
	{0x007B, "npc_crtpk", args{i32, i32}, v34 | fArgs},
	{0x007C, "npc_crppk", args{regs32(7), i32}, v12},
	{0x007C, "npc_crppk", args{regs(7)}, v34},
	{0x007D, "npc_crptalk", args{regs32(6), i32}, v12},
	{0x007D, "npc_crptalk", args{regs(6)}, v34},
	{0x007E, "p_look_at", args{clientID, clientID}, v12},
	{0x007E, "p_look_at", args{clientID, clientID}, v34 | fArgs},
	{0x007F, "npc_crp_id", args{regs32(7), i32}, v12},
	{0x007F, "npc_crp_id", args{regs(7)}, v34},
	{0x0080, "cam_quake", nil, v14},
	{0x0081, "cam_adj", nil, v14},
	{0x0082, "cam_zmin", nil, v14},
	{0x0083, "cam_zmout", nil, v14},
	{0x0084, "cam_pan", args{regs32(5), i32}, v12},
	{0x0084, "cam_pan", args{regs(5)}, v34},
	{0x0085, "game_lev_super", nil, v12},
	{0x0085, "nop_85", nil, v34},
	{0x0086, "game_lev_reset", nil, v12},
	{0x0086, "nop_86", nil, v34},
	{0x0087, "pos_pipe", args{regs32(4), i32}, v12},
	{0x0087, "pos_pipe", args{regs(4)}, v34},
	{0x0088, "if_zone_clear", args{reg, regs(2)}, v14},
	{0x0089, "chk_ene_num", args{reg}, v14},
	{0x008A, "unhide_obj", args{regs(3)}, v14},
	{0x008B, "unhide_ene", args{regs(3)}, v14},
	{0x008C, "at_coords_call", args{regs(5)}, v14},
	{0x008D, "at_coords_talk", args{regs(5)}, v14},
	{0x008E, "col_npcin", args{regs(5)}, v14},
	{0x008F, "col_npcinr", args{regs(6)}, v14},
	{0x0090, "switch_on", args{i32}, v12},
	{0x0090, "switch_on", args{i32}, v34 | fArgs},
	{0x0091, "switch_off", args{i32}, v12},
	{0x0091, "switch_off", args{i32}, v34 | fArgs},
	{0x0092, "playbgm_epi", args{i32}, v12},
	{0x0092, "playbgm_epi", args{i32}, v34 | fArgs},
	{0x0093, "set_mainwarp", args{i32}, v12},
	{0x0093, "set_mainwarp", args{i32}, v34 | fArgs},
	{0x0094, "set_obj_param", args{regs(6), reg}, v14},
	{0x0095, "set_floor_handler", args{area, script32}, v12},
	{0x0095, "set_floor_handler", args{area, script16}, v34 | fArgs},
	{0x0096, "clr_floor_handler", args{area}, v12},
	{0x0096, "clr_floor_handler", args{area}, v34 | fArgs},
	{0x0097, "col_plinaw", args{regs(9)}, v14},
	{0x0098, "hud_hide", nil, v14},
	{0x0099, "hud_show", nil, v14},
	{0x009A, "cine_enable", nil, v14},
	{0x009B, "cine_disable", nil, v14},
	{0x00A0, "nop_A0_debug", args{i32, cstr}, v12},
	{0x00A0, "nop_A0_debug", args{i32, cstr}, v34 | fArgs},
	{0x00A1, "set_qt_failure", args{script32}, v12},
	{0x00A1, "set_qt_failure", args{script16}, v34},
	{0x00A2, "set_qt_success", args{script32}, v12},
	{0x00A2, "set_qt_success", args{script16}, v34},
	{0x00A3, "clr_qt_failure", nil, v14},
	{0x00A4, "clr_qt_success", nil, v14},
	{0x00A5, "set_qt_cancel", args{script32}, v12},
	{0x00A5, "set_qt_cancel", args{script16}, v34},
	{0x00A6, "clr_qt_cancel", nil, v14},
	{0x00A8, "pl_walk", args{regs32(4), i32}, v12},
	{0x00A8, "pl_walk", args{regs(4)}, v34},
	{0x00B0, "pl_add_meseta", args{clientID, i32}, v12},
	{0x00B0, "pl_add_meseta", args{clientID, i32}, v34 | fArgs},
	{0x00B1, "thread_stg", args{script16}, v14},
	{0x00B2, "del_obj_param", args{reg}, v14},
	{0x00B3, "item_create", args{regs(3), reg}, v14},
	{0x00B4, "item_create2", args{regs(12), reg}, v14},
	{0x00B5, "item_delete", args{reg, regs(12)}, v14},
	{0x00B6, "item_delete2", args{regs(3), regs(12)}, v14},
	{0x00B7, "item_check", args{regs(3), reg}, v14},
	{0x00B8, "setevt", args{i32}, v12},
	{0x00B8, "setevt", args{i32}, v34 | fArgs},
	{0x00B9, "get_difficulty_level_v1", args{reg}, v14},
	{0x00BA, "set_qt_exit", args{script32}, v12},
	{0x00BA, "set_qt_exit", args{script16}, v34},
	{0x00BB, "clr_qt_exit", nil, v14},
	{0x00BC, "nop_BC", args{cstr}, v14},
	{0x00C0, "particle", args{regs32(5), i32}, v12},
	{0x00C0, "particle", args{regs(5)}, v34},
	{0x00C1, "npc_text", args{i32, cstr}, v12},
	{0x00C1, "npc_text", args{i32, cstr}, v34 | fArgs},
	{0x00C2, "npc_chkwarp", nil, v14},
	{0x00C3, "pl_pkoff", nil, v14},
	{0x00C4, "map_designate", args{regs(4)}, v14},
	{0x00C5, "masterkey_on", nil, v14},
	{0x00C6, "masterkey_off", nil, v14},
	{0x00C7, "window_time", nil, v14},
	{0x00C8, "winend_time", nil, v14},
	{0x00C9, "winset_time", args{reg}, v14},
	{0x00CA, "getmtime", args{reg}, v14},
	{0x00CB, "set_quest_board_handler", args{i32, script32, cstr}, v12},
	{0x00CB, "set_quest_board_handler", args{i32, script16, cstr}, v34 | fArgs},
	{0x00CC, "clear_quest_board_handler", args{i32}, v12},
	{0x00CC, "clear_quest_board_handler", args{i32}, v34 | fArgs},
	{0x00CD, "particle_id", args{regs32(4), i32}, v12},
	{0x00CD, "particle_id", args{regs(4)}, v34},
	{0x00CE, "npc_crptalk_id", args{regs32(7), i32}, v12},
	{0x00CE, "npc_crptalk_id", args{regs(7)}, v34},
	{0x00CF, "npc_lang_clean", nil, v14},
	{0x00D0, "pl_pkon", nil, v14},
	{0x00D1, "pl_chk_item2", args{regs(4), reg}, v14},
	{0x00D2, "enable_mainmenu", nil, v14},
	{0x00D3, "disable_mainmenu", nil, v14},
	{0x00D4, "start_battlebgm", nil, v14},
	{0x00D5, "end_battlebgm", nil, v14},
	{0x00D6, "disp_msg_qb", args{cstr}, v12},
	{0x00D6, "disp_msg_qb", args{cstr}, v34 | fArgs},
	{0x00D7, "close_msg_qb", nil, v14},
	{0x00D8, "set_eventflag", args{i32, i32}, v12},
	{0x00D8, "set_eventflag", args{i32, i32}, v34 | fArgs},
	{0x00D9, "sync_register", args{i32, i32}, v12},
	{0x00D9, "sync_register", args{i32, i32}, v34 | fArgs},
	{0x00DA, "set_returnhunter", nil, v14},
	{0x00DB, "set_returncity", nil, v14},
	{0x00DC, "load_pvr", nil, v14},
	{0x00DD, "load_midi", nil, v14},
	{0x00DE, "item_detect_bank", args{regs(6), reg}, v14},
	{0x00DF, "npc_param", args{regs32(14), i32}, v12},
	{0x00DF, "npc_param", args{regs(14), i32}, v34},
	{0x00E0, "pad_dragon", nil, v14},
	{0x00E1, "clear_mainwarp", args{i32}, v12},
	{0x00E1, "clear_mainwarp", args{i32}, v34 | fArgs},
	{0x00E2, "pcam_param", args{regs32(6)}, v12},
	{0x00E2, "pcam_param", args{regs(6)}, v34},
	{0x00E3, "start_setevt", args{i32, i32}, v12},
	{0x00E3, "start_setevt", args{i32, i32}, v34 | fArgs},
	{0x00E4, "warp_on", nil, v14},
	{0x00E5, "warp_off", nil, v14},
	{0x00E6, "get_client_id", args{reg}, v14},
	{0x00E7, "get_leader_id", args{reg}, v14},
	{0x00E8, "set_eventflag2", args{i32, reg}, v12},
	{0x00E8, "set_eventflag2", args{i32, reg}, v34 | fArgs},
	{0x00E9, "mod2", args{reg, reg}, v14},
	{0x00EA, "modi2", args{reg, i32}, v14},
	{0x00EB, "enable_bgmctrl", args{i32}, v12},
	{0x00EB, "enable_bgmctrl", args{i32}, v34 | fArgs},
	{0x00EC, "sw_send", args{regs(3)}, v14},
	{0x00ED, "create_bgmctrl", nil, v14},
	{0x00EE, "pl_add_meseta2", args{i32}, v12},
	{0x00EE, "pl_add_meseta2", args{i32}, v34 | fArgs},
	{0x00EF, "sync_register2", args{i32, reg32}, v12},
	{0x00EF, "sync_register2", args{i32, i32}, v34 | fArgs},
	{0x00F0, "send_regwork", args{i32, reg32}, v12},
	{0x00F1, "leti_fixed_camera", args{regs32(6)}, v2},
	{0x00F1, "leti_fixed_camera", args{regs(6)}, v34},
	{0x00F2, "default_camera_pos1", nil, v24},
	{0xF800, "debug_F800", nil, v2},
	{0xF801, "set_chat_callback", args{regs32(5), cstr}, v2},
	{0xF801, "set_chat_callback", args{regs(5), cstr}, v34 | fArgs},
	{0xF808, "get_difficulty_level2", args{reg}, v24},
	{0xF809, "get_number_of_players", args{reg}, v24},
	{0xF80A, "get_coord_of_player", args{regs(3), reg}, v24},
	{0xF80B, "enable_map", nil, v24},
	{0xF80C, "disable_map", nil, v24},
	{0xF80D, "map_designate_ex", args{regs(5)}, v24},
	{0xF80E, "disable_weapon_drop", args{clientID}, v2},
	{0xF80E, "disable_weapon_drop", args{clientID}, v34 | fArgs},
	{0xF80F, "enable_weapon_drop", args{clientID}, v2},
	{0xF80F, "enable_weapon_drop", args{clientID}, v34 | fArgs},
	{0xF810, "ba_initial_floor", args{area}, v2},
	{0xF810, "ba_initial_floor", args{area}, v34 | fArgs},
	{0xF811, "set_ba_rules", nil, v24},
	{0xF812, "ba_set_tech", args{i32}, v2},
	{0xF812, "ba_set_tech", args{i32}, v34 | fArgs},
	{0xF813, "ba_set_equip", args{i32}, v2},
	{0xF813, "ba_set_equip", args{i32}, v34 | fArgs},
	{0xF814, "ba_set_mag", args{i32}, v2},
	{0xF814, "ba_set_mag", args{i32}, v34 | fArgs},
	{0xF815, "ba_set_item", args{i32}, v2},
	{0xF815, "ba_set_item", args{i32}, v34 | fArgs},
	{0xF816, "ba_set_trapmenu", args{i32}, v2},
	{0xF816, "ba_set_trapmenu", args{i32}, v34 | fArgs},
	{0xF817, "ba_set_unused_F817", args{i32}, v2},
	{0xF817, "ba_set_unused_F817", args{i32}, v34 | fArgs},
	{0xF818, "ba_set_respawn", args{i32}, v2},
	{0xF818, "ba_set_respawn", args{i32}, v34 | fArgs},
	{0xF819, "ba_set_char", args{i32}, v2},
	{0xF819, "ba_set_char", args{i32}, v34 | fArgs},
	{0xF81A, "ba_dropwep", args{i32}, v2},
	{0xF81A, "ba_dropwep", args{i32}, v34 | fArgs},
	{0xF81B, "ba_teams", args{i32}, v2},
	{0xF81B, "ba_teams", args{i32}, v34 | fArgs},
	{0xF81C, "ba_disp_msg", args{cstr}, v2},
	{0xF81C, "ba_disp_msg", args{cstr}, v34 | fArgs},
	{0xF81D, "death_lvl_up", args{i32}, v2},
	{0xF81D, "death_lvl_up", args{i32}, v34 | fArgs},
	{0xF81E, "ba_set_meseta", args{i32}, v2},
	{0xF81E, "ba_set_meseta", args{i32}, v34 | fArgs},
	{0xF820, "cmode_stage", args{i32}, v2},
	{0xF820, "cmode_stage", args{i32}, v34 | fArgs},
	{0xF821, "nop_F821", args{regs(9)}, v24},
	{0xF822, "nop_F822", args{reg}, v24},
	{0xF823, "set_cmode_char_template", args{i32}, v2},
	{0xF823, "set_cmode_char_template", args{i32}, v34 | fArgs},
	{0xF824, "set_cmode_diff", args{i32}, v2},
	{0xF824, "set_cmode_diff", args{i32}, v34 | fArgs},
	{0xF825, "exp_multiplication", args{regs(3)}, v24},
	{0xF826, "unknown_F826", args{reg}, v24},
	{0xF827, "get_user_is_dead", args{reg}, v24},
	{0xF828, "go_floor", args{reg, reg}, v24},
	{0xF829, "get_num_kills", args{reg, reg}, v24},
	{0xF82A, "reset_kills", args{reg}, v24},
	{0xF82B, "unlock_door2", args{i32, i32}, v2},
	{0xF82B, "unlock_door2", args{i32, i32}, v34 | fArgs},
	{0xF82C, "lock_door2", args{i32, i32}, v2},
	{0xF82C, "lock_door2", args{i32, i32}, v34 | fArgs},
	{0xF82D, "if_switch_not_pressed", args{regs(2)}, v24},
	{0xF82E, "if_switch_pressed", args{regs(3)}, v24},
	{0xF830, "control_dragon", args{reg}, v24},
	{0xF831, "release_dragon", nil, v24},
	{0xF838, "shrink", args{reg}, v24},
	{0xF839, "unshrink", args{reg}, v24},
	{0xF83A, "set_shrink_cam1", args{regs(4)}, v24},
	{0xF83B, "set_shrink_cam2", args{regs(4)}, v24},
	{0xF83C, "display_clock2", args{reg}, v24},
	{0xF83D, "set_area_total", args{i32}, v2},
	{0xF83D, "set_area_total", args{i32}, v34 | fArgs},
	{0xF83E, "delete_area_title", args{i32}, v2},
	{0xF83E, "delete_area_title", args{i32}, v34 | fArgs},
	{0xF840, "load_npc_data", nil, v24},
	{0xF841, "get_npc_data", args{visual16}, v24},
	{0xF848, "give_damage_score", args{regs(3)}, v24},
	{0xF849, "take_damage_score", args{regs(3)}, v24},
	{0xF84A, "unknown_F84A", args{regs(3)}, v24},
	{0xF84B, "unknown_F84B", args{regs(3)}, v24},
	{0xF84C, "kill_score", args{regs(3)}, v24},
	{0xF84D, "death_score", args{regs(3)}, v24},
	{0xF84E, "unknown_F84E", args{regs(3)}, v24},
	{0xF84F, "enemy_death_score", args{regs(3)}, v24},
	{0xF850, "meseta_score", args{regs(3)}, v24},
	{0xF851, "ba_set_trap_count", args{regs(2)}, v24},
	{0xF852, "unknown_F852", args{i32}, v2},
	{0xF852, "unknown_F852", args{i32}, v34 | fArgs},
	{0xF853, "reverse_warps", nil, v24},
	{0xF854, "unreverse_warps", nil, v24},
	{0xF855, "set_ult_map", nil, v24},
	{0xF856, "unset_ult_map", nil, v24},
	{0xF857, "set_area_title", args{cstr}, v2},
	{0xF857, "set_area_title", args{cstr}, v34 | fArgs},
	{0xF858, "ba_show_self_traps", nil, v24},
	{0xF859, "ba_hide_self_traps", nil, v24},
	{0xF85A, "equip_item", args{regs32(4)}, v2},
	{0xF85A, "equip_item", args{regs(4)}, v34},
	{0xF85B, "unequip_item", args{clientID, i32}, v2},
	{0xF85B, "unequip_item", args{clientID, i32}, v34 | fArgs},
	{0xF85C, "qexit2", args{i32}, v24},
	{0xF85D, "set_allow_item_flags", args{i32}, v2},
	{0xF85D, "set_allow_item_flags", args{i32}, v34 | fArgs},
	{0xF85E, "unknown_F85E", args{i32}, v2},
	{0xF85E, "unknown_F85E", args{i32}, v34 | fArgs},
	{0xF85F, "unknown_F85F", args{i32}, v2},
	{0xF85F, "unknown_F85F", args{i32}, v34 | fArgs},
	{0xF860, "clear_score_announce", nil, v24},
	{0xF861, "set_score_announce", args{i32}, v2},
	{0xF861, "set_score_announce", args{i32}, v34 | fArgs},
	{0xF862, "give_s_rank_weapon", args{reg32, reg32, cstr}, v2},
	{0xF862, "give_s_rank_weapon", args{i32, reg, cstr}, v34 | fArgs},
	{0xF863, "get_mag_levels", args{regs32(4)}, v2},
	{0xF863, "get_mag_levels", args{regs(4)}, v34},
	{0xF864, "cmode_rank", args{i32, cstr}, v2},
	{0xF864, "cmode_rank", args{i32, cstr}, v34 | fArgs},
	{0xF865, "award_item_name", nil, v24},
	{0xF866, "award_item_select", nil, v24},
	{0xF867, "award_item_give_to", args{reg}, v24},
	{0xF868, "set_cmode_rank", args{reg, reg}, v24},
	{0xF869, "check_rank_time", args{reg, reg}, v24},
	{0xF86A, "item_create_cmode", args{regs(6), reg}, v24},
	{0xF86B, "ba_box_drops", args{reg}, v24},
	{0xF86C, "award_item_ok", args{reg}, v24},
	{0xF86D, "ba_set_trapself", nil, v24},
	{0xF86E, "ba_clear_trapself", nil, v24},
	{0xF86F, "ba_set_lives", args{i32}, v2},
	{0xF86F, "ba_set_lives", args{i32}, v34 | fArgs},
	{0xF870, "ba_set_tech_lvl", args{i32}, v2},
	{0xF870, "ba_set_tech_lvl", args{i32}, v34 | fArgs},
	{0xF871, "ba_set_lvl", args{i32}, v2},
	{0xF871, "ba_set_lvl", args{i32}, v34 | fArgs},
	{0xF872, "ba_set_time_limit", args{i32}, v2},
	{0xF872, "ba_set_time_limit", args{i32}, v34 | fArgs},
	{0xF873, "dark_falz_is_dead", args{reg}, v24},
	{0xF874, "unknown_F874", args{i32, cstr}, v2},
	{0xF874, "unknown_F874", args{i32, cstr}, v34 | fArgs},
	{0xF875, "enable_stealth_suit_effect", args{reg}, v24},
	{0xF876, "disable_stealth_suit_effect", args{reg}, v24},
	{0xF877, "enable_techs", args{reg}, v24},
	{0xF878, "disable_techs", args{reg}, v24},
	{0xF879, "get_gender", args{reg, reg}, v24},
	{0xF87A, "get_chara_class", args{reg, regs(2)}, v24},
	{0xF87B, "take_slot_meseta", args{regs(2), reg}, v24},
	{0xF87C, "get_guild_card_file_creation_time", args{reg}, v24},
	{0xF87D, "kill_player", args{reg}, v24},
	{0xF87E, "get_serial_number", args{reg}, v24},
	{0xF87F, "get_eventflag", args{reg, reg}, v24},
	{0xF880, "set_trap_damage", args{regs(3)}, v24},
	{0xF881, "get_pl_name", args{reg}, v24},
	{0xF882, "get_pl_job", args{reg}, v24},
	{0xF883, "get_player_proximity", args{regs(2), reg}, v24},
	{0xF884, "set_eventflag16", args{i32, reg}, v2},
	{0xF884, "set_eventflag16", args{i32, i32}, v34 | fArgs},
	{0xF885, "set_eventflag32", args{i32, reg}, v2},
	{0xF885, "set_eventflag32", args{i32, i32}, v34 | fArgs},
	{0xF886, "ba_get_place", args{reg, reg}, v24},
	{0xF887, "ba_get_score", args{reg, reg}, v24},
	{0xF888, "enable_win_pfx", nil, v24},
	{0xF889, "disable_win_pfx", nil, v24},
	{0xF88A, "get_player_status", args{reg, reg}, v24},
	{0xF88B, "send_mail", args{reg, cstr}, v2},
	{0xF88B, "send_mail", args{reg, cstr}, v34 | fArgs},
	{0xF88C, "get_game_version", args{reg}, v24},
	{0xF88D, "chl_set_timerecord", args{reg}, v23},
	{0xF88D, "chl_set_timerecord", args{reg, reg}, v4},
	{0xF88E, "chl_get_timerecord", args{reg}, v24},
	{0xF88F, "set_cmode_grave_rates", args{regs(20)}, v24},
	{0xF890, "clear_mainwarp_all", nil, v24},
	{0xF891, "load_enemy_data", args{i32}, v2},
	{0xF891, "load_enemy_data", args{i32}, v34 | fArgs},
	{0xF892, "get_physical_data", args{stats16}, v24},
	{0xF893, "get_attack_data", args{attack16}, v24},
	{0xF894, "get_resist_data", args{resist16}, v24},
	{0xF895, "get_movement_data", args{movement16}, v24},
	{0xF896, "get_eventflag16", args{reg, reg}, v24},
	{0xF897, "get_eventflag32", args{reg, reg}, v24},
	{0xF898, "shift_left", args{reg, reg}, v24},
	{0xF899, "shift_right", args{reg, reg}, v24},
	{0xF89A, "get_random", args{regs(2), reg}, v24},
	{0xF89B, "reset_map", nil, v24},
	{0xF89C, "disp_chl_retry_menu", args{reg}, v24},
	{0xF89D, "chl_reverser", nil, v24},
	{0xF89E, "ba_forbid_scape_dolls", args{i32}, v2},
	{0xF89E, "ba_forbid_scape_dolls", args{i32}, v34 | fArgs},
	{0xF89F, "player_recovery", args{reg}, v24},
	{0xF8A0, "disable_bosswarp_option", nil, v24},
	{0xF8A1, "enable_bosswarp_option", nil, v24},
	{0xF8A2, "is_bosswarp_opt_disabled", args{reg}, v24},
	{0xF8A3, "load_serial_number_to_flag_buf", nil, v24},
	{0xF8A4, "write_flag_buf_to_event_flags", args{reg}, v24},
	{0xF8A5, "set_chat_callback_no_filter", args{regs(5)}, v24},
	{0xF8A6, "set_symbol_chat_collision", args{regs(10)}, v24},
	{0xF8A7, "set_shrink_size", args{reg, regs(3)}, v24},
	{0xF8A8, "death_tech_lvl_up2", args{i32}, v2},
	{0xF8A8, "death_tech_lvl_up2", args{i32}, v34 | fArgs},
	{0xF8A9, "vol_opt_is_dead", args{reg}, v24},
	{0xF8AA, "is_there_grave_message", args{reg}, v24},
	{0xF8AB, "get_ba_record", args{regs(7)}, v24},
	{0xF8AC, "get_cmode_prize_rank", args{reg}, v24},
	{0xF8AD, "get_number_of_players2", args{reg}, v24},
	{0xF8AE, "party_has_name", args{reg}, v24},
	{0xF8AF, "someone_has_spoken", args{reg}, v24},
	{0xF8B0, "read1", args{reg, reg}, v2},
	{0xF8B0, "read1", args{reg, i32}, v34 | fArgs},
	{0xF8B1, "read2", args{reg, reg}, v2},
	{0xF8B1, "read2", args{reg, i32}, v34 | fArgs},
	{0xF8B2, "read4", args{reg, reg}, v2},
	{0xF8B2, "read4", args{reg, i32}, v34 | fArgs},
	{0xF8B3, "write1", args{reg, reg}, v2},
	{0xF8B3, "write1", args{i32, reg}, v34 | fArgs},
	{0xF8B4, "write2", args{reg, reg}, v2},
	{0xF8B4, "write2", args{i32, reg}, v34 | fArgs},
	{0xF8B5, "write4", args{reg, reg}, v2},
	{0xF8B5, "write4", args{i32, reg}, v34 | fArgs},
	{0xF8B6, "check_for_hacking", args{reg}, v2},
	{0xF8B7, "unknown_F8B7", args{reg}, v24},
	{0xF8B8, "disable_retry_menu", nil, v24},
	{0xF8B9, "chl_recovery", nil, v24},
	{0xF8BA, "load_guild_card_file_creation_time_to_flag_buf", nil, v24},
	{0xF8BB, "write_flag_buf_to_event_flags2", args{reg}, v24},
	{0xF8BC, "set_episode", args{i32}, v34 | fEpisode},
	{0xF8C0, "file_dl_req", args{i32, cstr}, v3 | fArgs},
	{0xF8C0, "nop_F8C0", args{i32, cstr}, v4 | fArgs},
	{0xF8C1, "get_dl_status", args{reg}, v3},
	{0xF8C1, "nop_F8C1", args{reg}, v4},
	{0xF8C2, "unknown_F8C2", nil, v3},
	{0xF8C2, "nop_F8C2", nil, v4},
	{0xF8C3, "get_gba_state", args{reg}, v3},
	{0xF8C3, "nop_F8C3", args{reg}, v4},
	{0xF8C4, "congrats_msg_multi_cm", args{reg}, v3},
	{0xF8C4, "nop_F8C4", args{reg}, v4},
	{0xF8C5, "stage_end_multi_cm", args{reg}, v3},
	{0xF8C5, "nop_F8C5", args{reg}, v4},
	{0xF8C6, "qexit", nil, v34},
	{0xF8C7, "use_animation", args{reg, reg}, v34},
	{0xF8C8, "stop_animation", args{reg}, v34},
	{0xF8C9, "run_to_coord", args{regs(4), reg}, v34},
	{0xF8CA, "set_slot_invincible", args{reg, reg}, v34},
	{0xF8CB, "clear_slot_invincible", args{reg}, v34},
	{0xF8CC, "set_slot_poison", args{reg}, v34},
	{0xF8CD, "set_slot_paralyze", args{reg}, v34},
	{0xF8CE, "set_slot_shock", args{reg}, v34},
	{0xF8CF, "set_slot_freeze", args{reg}, v34},
	{0xF8D0, "set_slot_slow", args{reg}, v34},
	{0xF8D1, "set_slot_confuse", args{reg}, v34},
	{0xF8D2, "set_slot_shifta", args{reg}, v34},
	{0xF8D3, "set_slot_deband", args{reg}, v34},
	{0xF8D4, "set_slot_jellen", args{reg}, v34},
	{0xF8D5, "set_slot_zalure", args{reg}, v34},
	{0xF8D6, "fleti_fixed_camera", args{regs(6)}, v34 | fArgs},
	{0xF8D7, "fleti_locked_camera", args{i32, regs(3)}, v34 | fArgs},
	{0xF8D8, "default_camera_pos2", nil, v34},
	{0xF8D9, "set_motion_blur", nil, v34},
	{0xF8DA, "set_screen_bw", nil, v34},
	{0xF8DB, "get_vector_from_path", args{i32, f32, f32, i32, regs(4), script16}, v34 | fArgs},
	{0xF8DC, "npc_action_string", args{reg, reg, str16}, v34},
	{0xF8DD, "get_pad_cond", args{reg, reg}, v34},
	{0xF8DE, "get_button_cond", args{reg, reg}, v34},
	{0xF8DF, "freeze_enemies", nil, v34},
	{0xF8E0, "unfreeze_enemies", nil, v34},
	{0xF8E1, "freeze_everything", nil, v34},
	{0xF8E2, "unfreeze_everything", nil, v34},
	{0xF8E3, "restore_hp", args{reg}, v34},
	{0xF8E4, "restore_tp", args{reg}, v34},
	{0xF8E5, "close_chat_bubble", args{reg}, v34},
	{0xF8E6, "move_coords_object", args{reg, regs(3)}, v34},
	{0xF8E7, "at_coords_call_ex", args{regs(5), reg}, v34},
	{0xF8E8, "at_coords_talk_ex", args{regs(5), reg}, v34},
	{0xF8E9, "walk_to_coord_call_ex", args{regs(5), reg}, v34},
	{0xF8EA, "col_npcinr_ex", args{regs(6), reg}, v34},
	{0xF8EB, "set_obj_param_ex", args{regs(6), reg}, v34},
	{0xF8EC, "col_plinaw_ex", args{regs(9), reg}, v34},
	{0xF8ED, "animation_check", args{reg, reg}, v34},
	{0xF8EE, "call_image_data", args{i32, image16}, v34 | fArgs},
	{0xF8EF, "nop_F8EF", nil, v34},
	{0xF8F0, "turn_off_bgm_p2", nil, v34},
	{0xF8F1, "turn_on_bgm_p2", nil, v34},
	{0xF8F2, "unknown_F8F2", args{i32, f32, f32, i32, regs(4), f8f2Data16}, v34 | fArgs},
	{0xF8F3, "particle2", args{regs(3), i32, f32}, v34 | fArgs},
	{0xF901, "dec2float", args{reg, reg}, v34},
	{0xF902, "float2dec", args{reg, reg}, v34},
	{0xF903, "flet", args{reg, reg}, v34},
	{0xF904, "fleti", args{reg, f32}, v34},
	{0xF908, "fadd", args{reg, reg}, v34},
	{0xF909, "faddi", args{reg, f32}, v34},
	{0xF90A, "fsub", args{reg, reg}, v34},
	{0xF90B, "fsubi", args{reg, f32}, v34},
	{0xF90C, "fmul", args{reg, reg}, v34},
	{0xF90D, "fmuli", args{reg, f32}, v34},
	{0xF90E, "fdiv", args{reg, reg}, v34},
	{0xF90F, "fdivi", args{reg, f32}, v34},
	{0xF910, "get_total_deaths", args{clientID, reg}, v34 | fArgs},
	{0xF911, "get_stackable_item_count", args{regs(4), reg}, v34},
	{0xF912, "freeze_and_hide_equip", nil, v34},
	{0xF913, "thaw_and_show_equip", nil, v34},
	{0xF914, "set_palettex_callback", args{clientID, script16}, v34 | fArgs},
	{0xF915, "activate_palettex", args{clientID}, v34 | fArgs},
	{0xF916, "enable_palettex", args{clientID}, v34 | fArgs},
	{0xF917, "restore_palettex", args{clientID}, v34 | fArgs},
	{0xF918, "disable_palettex", args{clientID}, v34 | fArgs},
	{0xF919, "get_palettex_activated", args{clientID, reg}, v34 | fArgs},
	{0xF91A, "get_unknown_palettex_status", args{clientID, i32, reg}, v34 | fArgs},
	{0xF91B, "disable_movement2", args{clientID}, v34 | fArgs},
	{0xF91C, "enable_movement2", args{clientID}, v34 | fArgs},
	{0xF91D, "get_time_played", args{reg}, v34},
	{0xF91E, "get_guildcard_total", args{reg}, v34},
	{0xF91F, "get_slot_meseta", args{reg}, v34},
	{0xF920, "get_player_level", args{clientID, reg}, v34 | fArgs},
	{0xF921, "get_section_id", args{clientID, reg}, v34 | fArgs},
	{0xF922, "get_player_hp", args{clientID, regs(4)}, v34 | fArgs},
	{0xF923, "get_floor_number", args{clientID, regs(2)}, v34 | fArgs},
	{0xF924, "get_coord_player_detect", args{regs(3), regs(4)}, v34},
	{0xF925, "read_global_flag", args{i32, reg}, v34 | fArgs},
	{0xF926, "write_global_flag", args{i32, i32}, v34 | fArgs},
	{0xF927, "item_detect_bank2", args{regs(4), reg}, v34},
	{0xF928, "floor_player_detect", args{regs(4)}, v34},
	{0xF929, "read_disk_file", args{cstr}, v3 | fArgs},
	{0xF929, "nop_F929", args{cstr}, v4 | fArgs},
	{0xF92A, "open_pack_select", nil, v34},
	{0xF92B, "item_select", args{reg}, v34},
	{0xF92C, "get_item_id", args{reg}, v34},
	{0xF92D, "color_change", args{i32, i32, i32, i32, i32}, v34 | fArgs},
	{0xF92E, "send_statistic", args{i32, i32, i32, i32, i32, i32, i32, i32}, v34 | fArgs},
	{0xF92F, "unknown_F92F", args{i32, i32}, v3 | fArgs},
	{0xF92F, "nop_F92F", args{i32, i32}, v4 | fArgs},
	{0xF930, "chat_box", args{f32, f32, f32, f32, i32, cstr}, v34 | fArgs},
	{0xF931, "chat_bubble", args{i32, cstr}, v34 | fArgs},
	{0xF932, "set_episode2", args{reg}, v34},
	{0xF933, "item_create_multi_cm", args{regs(7)}, v3},
	{0xF933, "nop_F933", args{regs(7)}, v4},
	{0xF934, "scroll_text", args{i32, i32, i32, i32, i32, f32, reg, cstr}, v34 | fArgs},
	{0xF935, "gba_create_dl_graph", nil, v3},
	{0xF935, "nop_F935", nil, v4},
	{0xF936, "gba_destroy_dl_graph", nil, v3},
	{0xF936, "nop_F936", nil, v4},
	{0xF937, "gba_update_dl_graph", nil, v3},
	{0xF937, "nop_F937", nil, v4},
	{0xF938, "add_damage_to", args{i32, f32}, v34 | fArgs},
	{0xF939, "item_delete3", args{i32}, v34 | fArgs},
	{0xF93A, "get_item_info", args{itemID, regs(12)}, v34 | fArgs},
	{0xF93B, "item_packing1", args{itemID}, v34 | fArgs},
	{0xF93C, "item_packing2", args{itemID, i32}, v34 | fArgs},
	{0xF93D, "get_lang_setting", args{reg}, v34 | fArgs},
	{0xF93E, "prepare_statistic", args{i32, i32, i32}, v34 | fArgs},
	{0xF93F, "keyword_detect", nil, v34},
	{0xF940, "keyword", args{reg, i32, cstr}, v34 | fArgs},
	{0xF941, "get_guildcard_num", args{clientID, reg}, v34 | fArgs},
	{0xF942, "get_recent_symbol_chat", args{i32, regs(15)}, v34 | fArgs},
	{0xF943, "create_symbol_chat_capture_buffer", nil, v34},
	{0xF944, "get_item_stackability", args{itemID, reg}, v34 | fArgs},
	{0xF945, "initial_floor", args{i32}, v34 | fArgs},
	{0xF946, "sin", args{reg, i32}, v34 | fArgs},
	{0xF947, "cos", args{reg, i32}, v34 | fArgs},
	{0xF948, "tan", args{reg, i32}, v34 | fArgs},
	{0xF949, "atan2_int", args{reg, f32, f32}, v34 | fArgs},
	{0xF94A, "olga_flow_is_dead", args{reg}, v34},
	{0xF94B, "particle_effect_nc", args{regs(4)}, v34},
	{0xF94C, "player_effect_nc", args{regs(4)}, v34},
	{0xF94D, "give_or_take_card", args{regs(2)}, v3},
	{0xF94D, "nop_F94D", nil, v4},
	{0xF94E, "nop_F94E", nil, v4},
	{0xF94F, "nop_F94F", nil, v4},
	{0xF950, "bb_p2_menu", args{i32}, v4 | fArgs},
	{0xF951, "bb_map_designate", args{i8, i8, i8, i8, i8}, v4},
	{0xF952, "bb_get_number_in_pack", args{reg}, v4},
	{0xF953, "bb_swap_item", args{i32, i32, i32, i32, i32, i32, script16, script16}, v4 | fArgs},
	{0xF954, "bb_check_wrap", args{i32, reg}, v4 | fArgs},
	{0xF955, "bb_exchange_pd_item", args{i32, i32, i32, i32, i32}, v4 | fArgs},
	{0xF956, "bb_exchange_pd_srank", args{i32, i32, i32, i32, i32, i32, i32}, v4 | fArgs},
	{0xF957, "bb_exchange_pd_special", args{i32, i32, i32, i32, i32, i32, i32, i32}, v4 | fArgs},
	{0xF958, "bb_exchange_pd_percent", args{i32, i32, i32, i32, i32, i32, i32, i32}, v4 | fArgs},
	{0xF959, "bb_set_ep4_boss_can_escape", args{i32}, v4 | fArgs},
	{0xF95A, "unknown_F95A", args{reg}, v4},
	{0xF95B, "bb_send_6xD9", args{i32, i32, i32, i32, i32, i32}, v4 | fArgs},
	{0xF95C, "bb_exchange_slt", args{i32, i32, i32, i32}, v4 | fArgs},
	{0xF95D, "bb_exchange_pc", nil, v4},
	{0xF95E, "bb_box_create_bp", args{i32, i32, i32}, v4 | fArgs},
	{0xF95F, "bb_exchange_pt", args{i32, i32, i32, i32, i32}, v4 | fArgs},
	{0xF960, "bb_send_6xE2", args{i32}, v4 | fArgs},
	{0xF961, "bb_get_6xE3_status", args{reg}, v4},
}
